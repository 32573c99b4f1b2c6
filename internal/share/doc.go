// Package share serves acquisition outcomes to other machines over a
// WebSocket, and provides the matching client.
//
// The intended use is reading a phone's saved networks from a laptop:
// `wifipass serve` on the device (usually bound to 127.0.0.1 and reached
// through `adb forward tcp:8765 tcp:8765`), `wifipass view --remote` on the
// laptop.
//
// # Protocol
//
// Clients connect to GET /ws, optionally presenting a bearer token in the
// Authorization header or a token query parameter. Messages are JSON text
// frames:
//
//	→ {"type":"acquire"}
//	← {"type":"outcome","run_id":"…","status":"success","origin":"config_file",
//	   "synthetic":false,"records":[{"network_name":"Home","secret":"…"}]}
//
//	→ {"type":"ping"}
//	← {"type":"pong"}
//
// Any other type is answered with {"type":"error","message":"…"}. The
// connection stays open for further requests. Concurrent acquire requests
// from different clients share one chain run.
package share
