// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

// Package protocol defines the messages a changeset host exchanges with a
// version plugin and their binary encoding.
//
// One invocation carries exactly one GetVersionRequest on the plugin's
// standard input and exactly one GetVersionResponse on its standard output.
// There is no framing: a message is the full contents of the stream.
//
// Messages use the protocol buffers wire format so plugins can be written
// in any language with a protobuf runtime. The equivalent schema is:
//
//	syntax = "proto3";
//	package changeset.plugin.v1;
//
//	message FileRef            { string path = 1; }
//	message GetVersionRequest  { FileRef inputs = 1; }
//	message GetVersionResponse { string version = 1; }
//
// Encoding is deterministic: fields are written in field number order and
// proto3 default values are omitted. Decoding skips fields it does not know
// and rejects truncated or otherwise malformed input as a whole.
package protocol
