package gltf

import (
	"encoding/base64"
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/scenekit/gltf/schema"
)

// Resolver supplies the raw bytes behind a buffer record. Returning nil
// means the bytes are unavailable (an unsupported URI scheme, a missing
// external file); readers surface that as an absent sequence, not an error.
//
// Within one document's lifetime a resolver must behave as a pure lookup:
// repeated calls with the same buffer index return equivalent bytes.
type Resolver interface {
	Resolve(buffer schema.Index) []byte
}

// ResolverFunc adapts a plain function to the Resolver interface.
type ResolverFunc func(schema.Index) []byte

// Resolve implements Resolver.
func (f ResolverFunc) Resolve(buffer schema.Index) []byte {
	return f(buffer)
}

// SourceResolver serves buffer bytes from the document's own sources: the
// GLB BIN chunk for the URI-less buffer, base64 data URIs, and files read
// relative to the document's directory.
type SourceResolver struct {
	doc *schema.Document
	bin []byte
	dir string
}

// Resolver returns a SourceResolver bound to this document.
func (d *Document) Resolver() *SourceResolver {
	return &SourceResolver{doc: d.doc, bin: d.bin, dir: d.dir}
}

// Resolve implements Resolver.
func (r *SourceResolver) Resolve(buffer schema.Index) []byte {
	buf := r.doc.GetBuffer(buffer)
	if buf == nil {
		Logger().Debug("resolve: buffer index out of range", zap.Uint32("buffer", uint32(buffer)))
		return nil
	}

	switch {
	case buf.URI == "":
		// The URI-less buffer refers to the GLB BIN chunk, which may carry
		// up to 3 bytes of trailing padding.
		if r.bin == nil || len(r.bin) < int(buf.ByteLength) {
			Logger().Debug("resolve: no BIN chunk for embedded buffer",
				zap.Uint32("buffer", uint32(buffer)))
			return nil
		}
		return r.bin[:buf.ByteLength]

	case strings.HasPrefix(buf.URI, "data:"):
		data, err := decodeDataURI(buf.URI)
		if err != nil {
			Logger().Debug("resolve: bad data URI",
				zap.Uint32("buffer", uint32(buffer)), zap.Error(err))
			return nil
		}
		return data

	case strings.Contains(buf.URI, "://"):
		Logger().Debug("resolve: unsupported URI scheme",
			zap.Uint32("buffer", uint32(buffer)), zap.String("uri", buf.URI))
		return nil

	default:
		name, err := url.PathUnescape(buf.URI)
		if err != nil {
			Logger().Debug("resolve: bad URI escape",
				zap.Uint32("buffer", uint32(buffer)), zap.Error(err))
			return nil
		}
		data, err := os.ReadFile(filepath.Join(r.dir, filepath.FromSlash(name)))
		if err != nil {
			Logger().Debug("resolve: external file unavailable",
				zap.Uint32("buffer", uint32(buffer)), zap.Error(err))
			return nil
		}
		return data
	}
}

// decodeDataURI decodes a base64 data URI of the form
// "data:<mediatype>;base64,<payload>".
func decodeDataURI(uri string) ([]byte, error) {
	const marker = ";base64,"
	i := strings.Index(uri, marker)
	if i < 0 {
		return nil, errNotBase64
	}
	return base64.StdEncoding.DecodeString(uri[i+len(marker):])
}

var errNotBase64 = errors.New("data URI is not base64-encoded")
