// Package commands implements the courier command line.
//
// Every command except register, login and version resumes the saved
// login and unlocks the private key with the master secret, read from
// COURIER_MASTER_SECRET or prompted for on stdin. The unlocked key lives
// only for the duration of the command.
package commands
