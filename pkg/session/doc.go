/*
Package session orchestrates resumable runs over a snapshot store.

A Manager serializes load-run-save cycles on the same key, both inside one
process (reference counted mutexes) and across processes when given a
ports.Locker, so that two runs resuming the same network never interleave.
*/
package session
