// Package wifiapi reads saved network configurations from the operating
// system's WiFi service.
//
// The accessor that returns saved configurations is not part of a stable
// typed contract on every platform, so Reader calls it by name through
// reflection on an arbitrary service handle and treats every failure (no
// handle, no such method, unexpected signature, error result, panic) as
// "no configurations". Callers depend only on the Lister interface.
//
// Service handles provided here:
//
//	NMCLIService   NetworkManager through nmcli
//	WPACLIService  wpa_supplicant through wpa_cli
//
// Both expose GetConfiguredNetworks(ctx) ([]NetworkConfig, error).
//
// # Secret policy
//
// ExtractSecret applies, in order: open network (KeyMgmtNone) gives
// credential.SecretNotRequired; a pre-shared key gives the key; WEP key
// slot 0 gives that key; otherwise credential.SecretUnavailable.
package wifiapi
