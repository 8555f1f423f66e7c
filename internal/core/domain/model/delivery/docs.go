// Package delivery models the courier side of fulfillment: a courier claims an
// assembled sub-order, carries it, and either delivers it or gives it up.
//
// At most one non-cancelled Assignment exists per sub-order. Claiming moves
// the sub-order to dispatched, delivering moves it to delivered, and a courier
// cancellation returns it to assembled so another courier can claim it.
package delivery
