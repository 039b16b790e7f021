// Package handler holds the HTTP handlers of the local gateway emulator.
//
// Handlers read the raw request, hand it to the same envelope code the
// Lambda runs, and write the envelope back as an HTTP response.
package handler
