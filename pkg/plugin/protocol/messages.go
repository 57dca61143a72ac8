// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package protocol

import (
	"fmt"
	"unicode/utf8"

	"google.golang.org/protobuf/encoding/protowire"
)

// SchemaVersion names the message schema both sides are built against.
// The host advertises it to plugins through SchemaEnvVar; it is never
// carried inside a message.
const SchemaVersion = "changeset.plugin.v1"

// SchemaEnvVar is set by the host in every plugin's environment.
const SchemaEnvVar = "CHANGESET_PLUGIN_SCHEMA"

const (
	fileRefPathField     protowire.Number = 1
	requestInputsField   protowire.Number = 1
	responseVersionField protowire.Number = 1
)

// FileRef identifies the file a plugin reads to derive the version.
type FileRef struct {
	Path string
}

// GetVersionRequest asks a plugin for the project's current version.
// A nil Inputs means no input was provided, which is not the same as an
// Inputs with an empty Path.
type GetVersionRequest struct {
	Inputs *FileRef
}

// GetVersionResponse carries the resolved version. An empty Version means
// the plugin determined no version.
type GetVersionResponse struct {
	Version string
}

// NewGetVersionRequest builds a request for path. An empty path yields a
// request without inputs.
func NewGetVersionRequest(path string) *GetVersionRequest {
	if path == "" {
		return &GetVersionRequest{}
	}
	return &GetVersionRequest{Inputs: &FileRef{Path: path}}
}

func (m *FileRef) appendTo(b []byte) ([]byte, error) {
	if m.Path == "" {
		return b, nil
	}
	if !utf8.ValidString(m.Path) {
		return nil, fmt.Errorf("FileRef.path: invalid UTF-8")
	}
	b = protowire.AppendTag(b, fileRefPathField, protowire.BytesType)
	return protowire.AppendString(b, m.Path), nil
}

func (m *FileRef) merge(b []byte) error {
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case fileRefPathField:
			s, n, err := consumeString(typ, b)
			if err != nil {
				return 0, fmt.Errorf("FileRef.path: %w", err)
			}
			m.Path = s
			return n, nil
		}
		return skipField, nil
	})
}

// MarshalBinary encodes the request.
func (m *GetVersionRequest) MarshalBinary() ([]byte, error) {
	var b []byte
	if m == nil || m.Inputs == nil {
		return b, nil
	}

	inputs, err := m.Inputs.appendTo(nil)
	if err != nil {
		return nil, malformed("encode GetVersionRequest", err)
	}

	b = protowire.AppendTag(b, requestInputsField, protowire.BytesType)
	return protowire.AppendBytes(b, inputs), nil
}

// UnmarshalBinary decodes a request. On failure m is left untouched.
func (m *GetVersionRequest) UnmarshalBinary(data []byte) error {
	var decoded GetVersionRequest
	err := consumeFields(data, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case requestInputsField:
			v, n, err := consumeBytes(typ, b)
			if err != nil {
				return 0, fmt.Errorf("GetVersionRequest.inputs: %w", err)
			}
			if decoded.Inputs == nil {
				decoded.Inputs = &FileRef{}
			}
			if err := decoded.Inputs.merge(v); err != nil {
				return 0, fmt.Errorf("GetVersionRequest.inputs: %w", err)
			}
			return n, nil
		}
		return skipField, nil
	})
	if err != nil {
		return malformed("decode GetVersionRequest", err)
	}

	*m = decoded
	return nil
}

// MarshalBinary encodes the response.
func (m *GetVersionResponse) MarshalBinary() ([]byte, error) {
	var b []byte
	if m == nil || m.Version == "" {
		return b, nil
	}
	if !utf8.ValidString(m.Version) {
		return nil, malformed("encode GetVersionResponse", fmt.Errorf("GetVersionResponse.version: invalid UTF-8"))
	}

	b = protowire.AppendTag(b, responseVersionField, protowire.BytesType)
	return protowire.AppendString(b, m.Version), nil
}

// UnmarshalBinary decodes a response. On failure m is left untouched.
func (m *GetVersionResponse) UnmarshalBinary(data []byte) error {
	var decoded GetVersionResponse
	err := consumeFields(data, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case responseVersionField:
			s, n, err := consumeString(typ, b)
			if err != nil {
				return 0, fmt.Errorf("GetVersionResponse.version: %w", err)
			}
			decoded.Version = s
			return n, nil
		}
		return skipField, nil
	})
	if err != nil {
		return malformed("decode GetVersionResponse", err)
	}

	*m = decoded
	return nil
}

// DecodeRequest is a convenience wrapper around UnmarshalBinary.
func DecodeRequest(data []byte) (*GetVersionRequest, error) {
	req := &GetVersionRequest{}
	if err := req.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return req, nil
}

// DecodeResponse is a convenience wrapper around UnmarshalBinary.
func DecodeResponse(data []byte) (*GetVersionResponse, error) {
	resp := &GetVersionResponse{}
	if err := resp.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return resp, nil
}
