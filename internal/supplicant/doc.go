// Package supplicant parses wpa_supplicant configuration files into
// credential records.
//
// The format is line oriented with brace-delimited network blocks:
//
//	network={
//	    ssid="Home"
//	    psk="secret1"
//	    key_mgmt=WPA-PSK
//	}
//
// Only ssid= and psk= lines are read. A record is emitted when a line that
// is exactly "}" closes a block in which an ssid was seen; there is no flush
// at end of input. A block without psk= yields credential.SecretUnavailable.
//
// On Android the file lives at DefaultPath and is readable only by root.
// Read failures are logged and reported as an empty result, never as an
// error.
package supplicant
