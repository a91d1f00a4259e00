// Package clock provides a tiny time abstraction.
//
// Code that reads the time or paces periodic work depends on Clocker
// instead of calling time.Now or time.NewTicker directly. Tests substitute
// a fake that returns fixed instants and delivers ticks on demand.
package clock
