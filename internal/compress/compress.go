package compress

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/narith-dev/RentSign/internal/util"
	"go.uber.org/zap"
)

// Content-Encoding marker stored alongside compressed payloads. Empty means
// the payload is stored as-is.
const EncodingGzip = "gzip"

// Compressor gzips document payloads before upload, keeping the smaller of
// the original and compressed forms. Compression never fails the pipeline:
// any error falls back to the original bytes with a warning.
type Compressor struct {
	logger *zap.SugaredLogger
}

func NewCompressor(logger *zap.SugaredLogger) *Compressor {
	// For unit test
	if logger == nil {
		logger = util.NewLogger()
	}

	return &Compressor{logger: logger}
}

// Compress returns the payload to store and its encoding marker ("" or
// "gzip"). The returned payload is never larger than the input.
func (c *Compressor) Compress(payload []byte) ([]byte, string) {
	var buf bytes.Buffer

	gw, err := gzip.NewWriterLevel(&buf, gzip.BestCompression)
	if err != nil {
		c.logger.Warnf("gzip writer init failed, storing uncompressed: %v", err)
		return payload, ""
	}

	if _, err := gw.Write(payload); err != nil {
		c.logger.Warnf("gzip write failed, storing uncompressed: %v", err)
		return payload, ""
	}

	if err := gw.Close(); err != nil {
		c.logger.Warnf("gzip close failed, storing uncompressed: %v", err)
		return payload, ""
	}

	if buf.Len() >= len(payload) {
		return payload, ""
	}

	return buf.Bytes(), EncodingGzip
}

// Decompress restores a payload according to its encoding marker.
func (c *Compressor) Decompress(payload []byte, encoding string) ([]byte, error) {
	if encoding != EncodingGzip {
		return payload, nil
	}

	gr, err := gzip.NewReader(bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	defer gr.Close()

	return io.ReadAll(gr)
}
