package entropy

import (
	"encoding/binary"
	"os"
	"time"
)

// Record sizes of the fixed-layout uniqueness records.
const (
	nonceRecordSize      = 4 + 4 + 8 // pid, tid, wall clock
	additionalRecordSize = 4 + 8     // tid, performance counter
)

// nonceRecord builds the fixed little-endian nonce record. The record
// array starts out fully zeroed before the fields are placed, so it never
// contains residual memory, and unassigned bytes stay zero.
func nonceRecord(pid, tid uint32, clock uint64) []byte {
	var record [nonceRecordSize]byte

	binary.LittleEndian.PutUint32(record[0:4], pid)
	binary.LittleEndian.PutUint32(record[4:8], tid)
	binary.LittleEndian.PutUint64(record[8:16], clock)
	return record[:]
}

// additionalRecord builds the fixed little-endian additional data record,
// with the same zeroing discipline as nonceRecord.
func additionalRecord(tid uint32, counter uint64) []byte {
	var record [additionalRecordSize]byte

	binary.LittleEndian.PutUint32(record[0:4], tid)
	binary.LittleEndian.PutUint64(record[4:12], counter)
	return record[:]
}

// AddNonceData mixes the current process id, thread id and a high
// resolution wall clock timestamp into the pool, so that concurrently
// started processes and threads derive distinguishable seed material even
// when their entropy sources correlate. The data is uniqueness filler, not
// randomness, and is credited zero entropy bits.
func AddNonceData(p Pool) error {
	record := nonceRecord(
		uint32(os.Getpid()),
		currentThreadID(),
		uint64(time.Now().UnixNano()),
	)
	return p.Add(record, 0)
}

// AddAdditionalData mixes the current thread id and a high resolution
// performance counter into the pool to decorrelate reseeding events of
// generator instances sharing one global generator. Credited zero entropy
// bits, like nonce data.
func AddAdditionalData(p Pool) error {
	record := additionalRecord(
		currentThreadID(),
		uint64(performanceCounter()),
	)
	return p.Add(record, 0)
}
