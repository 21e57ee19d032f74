package entropy

import (
	"bytes"
	"encoding/binary"
	"os"
	"testing"

	"github.com/safing/entropy/pool"
)

func TestNonceRecordLayout(t *testing.T) {
	t.Parallel()

	record := nonceRecord(0x01020304, 0x05060708, 0x1112131415161718)
	if len(record) != nonceRecordSize {
		t.Fatalf("unexpected record size: %d", len(record))
	}
	if got := binary.LittleEndian.Uint32(record[0:4]); got != 0x01020304 {
		t.Errorf("pid field mismatch: %#x", got)
	}
	if got := binary.LittleEndian.Uint32(record[4:8]); got != 0x05060708 {
		t.Errorf("tid field mismatch: %#x", got)
	}
	if got := binary.LittleEndian.Uint64(record[8:16]); got != 0x1112131415161718 {
		t.Errorf("clock field mismatch: %#x", got)
	}

	// With all fields zero the whole record must be zero: the record
	// never carries residual memory outside its assigned fields.
	if !bytes.Equal(nonceRecord(0, 0, 0), make([]byte, nonceRecordSize)) {
		t.Error("zero-value nonce record contains residual bytes")
	}
}

func TestAdditionalRecordLayout(t *testing.T) {
	t.Parallel()

	record := additionalRecord(0x0a0b0c0d, 0x2122232425262728)
	if len(record) != additionalRecordSize {
		t.Fatalf("unexpected record size: %d", len(record))
	}
	if got := binary.LittleEndian.Uint32(record[0:4]); got != 0x0a0b0c0d {
		t.Errorf("tid field mismatch: %#x", got)
	}
	if got := binary.LittleEndian.Uint64(record[4:12]); got != 0x2122232425262728 {
		t.Errorf("counter field mismatch: %#x", got)
	}

	if !bytes.Equal(additionalRecord(0, 0), make([]byte, additionalRecordSize)) {
		t.Error("zero-value additional data record contains residual bytes")
	}
}

func TestAddNonceData(t *testing.T) {
	t.Parallel()

	p := pool.New(256)
	if err := AddNonceData(p); err != nil {
		t.Fatal(err)
	}

	// Uniqueness data must never be credited as entropy.
	if p.EntropyAvailable() != 0 {
		t.Errorf("nonce data credited %d bits", p.EntropyAvailable())
	}
	if p.Length() != nonceRecordSize {
		t.Errorf("expected %d bytes of nonce data, got %d", nonceRecordSize, p.Length())
	}

	seed := p.SeedMaterial()
	if got := binary.LittleEndian.Uint32(seed[0:4]); got != uint32(os.Getpid()) {
		t.Errorf("nonce pid is %d, expected %d", got, os.Getpid())
	}
	if clock := binary.LittleEndian.Uint64(seed[8:16]); clock == 0 {
		t.Error("nonce clock is zero")
	}
}

func TestAddAdditionalData(t *testing.T) {
	t.Parallel()

	p := pool.New(256)
	if err := AddAdditionalData(p); err != nil {
		t.Fatal(err)
	}

	if p.EntropyAvailable() != 0 {
		t.Errorf("additional data credited %d bits", p.EntropyAvailable())
	}
	if p.Length() != additionalRecordSize {
		t.Errorf("expected %d bytes of additional data, got %d", additionalRecordSize, p.Length())
	}
}

func TestNonceDataDiffers(t *testing.T) {
	t.Parallel()

	// Records taken over time must differ in their clock reading.
	one := pool.New(256)
	if err := AddNonceData(one); err != nil {
		t.Fatal(err)
	}
	a := binary.LittleEndian.Uint64(one.SeedMaterial()[8:16])

	for i := 0; i < 100; i++ {
		two := pool.New(256)
		if err := AddNonceData(two); err != nil {
			t.Fatal(err)
		}
		if binary.LittleEndian.Uint64(two.SeedMaterial()[8:16]) != a {
			return
		}
	}
	t.Error("nonce records never advanced their timestamp")
}
