// Package kdf derives the 256-bit keys used by agcrypt envelopes.
//
// Machine keys are bound to the platform machine identity and the OS account
// name and need no user input. Two algorithms exist:
//
//   - V1: SHA-256 over "<machine id>:<user>:<app salt>". Weak, kept only so
//     that old backups stay readable. When the machine identity cannot be
//     read it falls back to a fixed per-platform placeholder, exactly as the
//     builds that produced those backups did.
//   - V2: Argon2id (t=2, m=19 MiB, p=1) over "<machine id>:<user>", salted
//     with the app salt and the machine id. Identity lookup failures and
//     empty ids are fatal. This is the only algorithm used for new data.
//
// Password keys use Argon2id with the same cost over a random 16-byte salt,
// so they are portable between machines.
//
// Keys are returned as *Key values backed by memguard locked buffers. Callers
// must Destroy them, normally with defer, as soon as the envelope operation
// is done. Keys are never cached: every call pays the derivation cost again.
package kdf
