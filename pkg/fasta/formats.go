package fasta

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression identifies the container a FASTA file is stored in.
type Compression int

const (
	CompressionNone Compression = iota
	CompressionGzip
	CompressionZstd
	CompressionLZ4
)

// FormatInfo describes a supported container.
type FormatInfo struct {
	Compression Compression
	Description string
	Extensions  []string
	Magic       []byte
}

var supportedFormats = map[Compression]FormatInfo{
	CompressionNone: {
		Compression: CompressionNone,
		Description: "Plain FASTA",
		Extensions:  []string{".fa", ".fasta", ".fna", ".faa", ".txt"},
	},
	CompressionGzip: {
		Compression: CompressionGzip,
		Description: "Gzip compressed FASTA",
		Extensions:  []string{".gz"},
		Magic:       []byte{0x1f, 0x8b},
	},
	CompressionZstd: {
		Compression: CompressionZstd,
		Description: "Zstandard compressed FASTA",
		Extensions:  []string{".zst"},
		Magic:       []byte{0x28, 0xb5, 0x2f, 0xfd},
	},
	CompressionLZ4: {
		Compression: CompressionLZ4,
		Description: "LZ4 frame compressed FASTA",
		Extensions:  []string{".lz4"},
		Magic:       []byte{0x04, 0x22, 0x4d, 0x18},
	},
}

func (c Compression) String() string {
	if info, ok := supportedFormats[c]; ok {
		return info.Description
	}
	return fmt.Sprintf("Compression(%d)", int(c))
}

// DetectCompression picks a container from the file extension. Unknown
// extensions report CompressionNone and false.
func DetectCompression(filename string) (Compression, bool) {
	ext := strings.ToLower(filepath.Ext(filename))
	for c, info := range supportedFormats {
		for _, e := range info.Extensions {
			if e == ext {
				return c, true
			}
		}
	}
	return CompressionNone, false
}

// Sniff inspects the first bytes of r for a known magic number without
// consuming them.
func Sniff(r *bufio.Reader) Compression {
	head, _ := r.Peek(4)
	for c, info := range supportedFormats {
		if len(info.Magic) > 0 && bytes.HasPrefix(head, info.Magic) {
			return c
		}
	}
	return CompressionNone
}

type multiCloser struct {
	io.Reader
	closers []func() error
}

func (m *multiCloser) Close() error {
	var first error
	for _, c := range m.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// NewReader wraps r with the decompressor for c.
func NewReader(r io.Reader, c Compression) (io.ReadCloser, error) {
	switch c {
	case CompressionNone:
		return io.NopCloser(r), nil
	case CompressionGzip:
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		return zr, nil
	case CompressionZstd:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		return dec.IOReadCloser(), nil
	case CompressionLZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	}
	return nil, fmt.Errorf("unsupported compression %v", c)
}

// Open opens filename and returns its decompressed contents. The container is
// taken from the extension, or sniffed from the content when the extension is
// not recognized.
func Open(filename string) (io.ReadCloser, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", filename, err)
	}
	br := bufio.NewReader(file)

	c, ok := DetectCompression(filename)
	if !ok {
		c = Sniff(br)
	}
	log.Debugf("Opening %s as %v", filename, c)

	rc, err := NewReader(br, c)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	return &multiCloser{Reader: rc, closers: []func() error{rc.Close, file.Close}}, nil
}

// ListSupportedFormats returns all supported containers.
func ListSupportedFormats() []FormatInfo {
	formats := make([]FormatInfo, 0, len(supportedFormats))
	for c := CompressionNone; c <= CompressionLZ4; c++ {
		formats = append(formats, supportedFormats[c])
	}
	return formats
}
