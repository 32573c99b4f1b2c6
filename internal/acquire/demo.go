package acquire

import (
	"fmt"

	"github.com/muurk/wifipass/internal/credential"
)

// DemoCount is the number of synthetic records the fallback produces.
const DemoCount = 5

var demoSecrets = [DemoCount]string{
	"12345678",
	"password123",
	"87654321",
	"adminadmin",
	"11112222",
}

// DemoRecords returns the fixed fallback list. Every call returns a fresh
// slice with identical contents.
func DemoRecords() []credential.Record {
	records := make([]credential.Record, DemoCount)
	for i, secret := range demoSecrets {
		records[i] = credential.Record{
			NetworkName: fmt.Sprintf("Demo WiFi %d", i+1),
			Secret:      secret,
		}
	}
	return records
}
