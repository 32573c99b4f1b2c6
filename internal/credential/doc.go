// Package credential defines the unit of data produced by an acquisition run.
//
// A Record pairs a network name with its secret. The secret is either the
// real shared key, one of the sentinels below, or a placeholder value from
// the demo source:
//
//	SecretNotRequired  the network is open
//	SecretUnavailable  the key could not be determined
//
// Records are plain values. They compare with ==, are never mutated after
// creation and are replaced wholesale on the next acquisition run.
package credential
