package memory

import (
	"encoding/binary"
	"fmt"
	"reflect"
	"unsafe"

	offset "github.com/wippyai/offset"
)

// Bytes is a Memory over a byte slice. Values are read and written in host
// byte order.
type Bytes struct {
	buf []byte
}

var (
	_ offset.Memory      = (*Bytes)(nil)
	_ offset.MemorySizer = (*Bytes)(nil)
)

// NewBytes wraps buf without copying it.
func NewBytes(buf []byte) *Bytes {
	return &Bytes{buf: buf}
}

// Alloc returns zeroed memory of size bytes.
func Alloc(size uint32) *Bytes {
	return &Bytes{buf: make([]byte, size)}
}

// Of returns a Memory aliasing the storage of the value ptr points to.
// Writes through it modify the value. ptr must be a non-nil pointer.
func Of(ptr any) (*Bytes, error) {
	v := reflect.ValueOf(ptr)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return nil, fmt.Errorf("memory.Of: need a non-nil pointer, got %T", ptr)
	}
	size := v.Type().Elem().Size()
	if size == 0 {
		return &Bytes{}, nil
	}
	return &Bytes{buf: unsafe.Slice((*byte)(v.UnsafePointer()), size)}, nil
}

// Bytes returns the underlying slice.
func (b *Bytes) Bytes() []byte {
	return b.buf
}

// Size returns the length of the slice.
func (b *Bytes) Size() uint32 {
	return uint32(len(b.buf))
}

func (b *Bytes) span(offset, length uint32) ([]byte, error) {
	end := uint64(offset) + uint64(length)
	if end > uint64(len(b.buf)) {
		return nil, fmt.Errorf("memory access out of bounds: offset=%d, length=%d, size=%d", offset, length, len(b.buf))
	}
	return b.buf[offset:end], nil
}

// Read returns a view of length bytes at offset.
func (b *Bytes) Read(offset uint32, length uint32) ([]byte, error) {
	return b.span(offset, length)
}

// Write copies data to offset.
func (b *Bytes) Write(offset uint32, data []byte) error {
	dst, err := b.span(offset, uint32(len(data)))
	if err != nil {
		return err
	}
	copy(dst, data)
	return nil
}

// ReadU8 reads an unsigned 8-bit value.
func (b *Bytes) ReadU8(offset uint32) (uint8, error) {
	p, err := b.span(offset, 1)
	if err != nil {
		return 0, err
	}
	return p[0], nil
}

// ReadU16 reads an unsigned 16-bit value.
func (b *Bytes) ReadU16(offset uint32) (uint16, error) {
	p, err := b.span(offset, 2)
	if err != nil {
		return 0, err
	}
	return binary.NativeEndian.Uint16(p), nil
}

// ReadU32 reads an unsigned 32-bit value.
func (b *Bytes) ReadU32(offset uint32) (uint32, error) {
	p, err := b.span(offset, 4)
	if err != nil {
		return 0, err
	}
	return binary.NativeEndian.Uint32(p), nil
}

// ReadU64 reads an unsigned 64-bit value.
func (b *Bytes) ReadU64(offset uint32) (uint64, error) {
	p, err := b.span(offset, 8)
	if err != nil {
		return 0, err
	}
	return binary.NativeEndian.Uint64(p), nil
}

// WriteU8 writes an unsigned 8-bit value.
func (b *Bytes) WriteU8(offset uint32, value uint8) error {
	p, err := b.span(offset, 1)
	if err != nil {
		return err
	}
	p[0] = value
	return nil
}

// WriteU16 writes an unsigned 16-bit value.
func (b *Bytes) WriteU16(offset uint32, value uint16) error {
	p, err := b.span(offset, 2)
	if err != nil {
		return err
	}
	binary.NativeEndian.PutUint16(p, value)
	return nil
}

// WriteU32 writes an unsigned 32-bit value.
func (b *Bytes) WriteU32(offset uint32, value uint32) error {
	p, err := b.span(offset, 4)
	if err != nil {
		return err
	}
	binary.NativeEndian.PutUint32(p, value)
	return nil
}

// WriteU64 writes an unsigned 64-bit value.
func (b *Bytes) WriteU64(offset uint32, value uint64) error {
	p, err := b.span(offset, 8)
	if err != nil {
		return err
	}
	binary.NativeEndian.PutUint64(p, value)
	return nil
}
