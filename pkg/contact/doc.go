// Package contact stores visitor inquiries and relays them to the
// photographer by email.
//
// Submission always persists the message first. Relaying is best effort:
// an unreachable mail server is logged and the inquiry is still accepted,
// so nothing a visitor sends is lost.
package contact
