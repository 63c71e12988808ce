// Package api exposes the operation dispatcher over HTTP. It serves two
// envelopes around the same dispatch pipeline: a JSON one at POST /rpc and a
// SOAP-shaped XML one at POST /soap. Envelope framing, bearer-token
// extraction, and fault serialization are the only concerns that live here;
// everything behind the operation name belongs to the dispatcher and the
// services.
package api
