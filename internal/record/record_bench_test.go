package record

import (
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/nibzard/taskbook/internal/task"
)

// BenchmarkDecode benchmarks decoding a single record line.
func BenchmarkDecode(b *testing.B) {
	line := "T | 1 | read the whole book | including appendix"
	for i := 0; i < b.N; i++ {
		if _, err := Decode(line); err != nil {
			b.Fatalf("Decode failed: %v", err)
		}
	}
}

// BenchmarkReadAllLarge benchmarks reading 1000 records.
func BenchmarkReadAllLarge(b *testing.B) {
	var sb strings.Builder
	for i := 1; i <= 1000; i++ {
		fmt.Fprintf(&sb, "T | %d | task number %d\n", i%2, i)
	}
	input := sb.String()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := NewReader(strings.NewReader(input)).ReadAll(); err != nil {
			b.Fatalf("ReadAll failed: %v", err)
		}
	}
}

// BenchmarkWriteAll benchmarks writing 1000 records.
func BenchmarkWriteAll(b *testing.B) {
	tasks := make([]*task.Task, 1000)
	for i := range tasks {
		tasks[i] = task.NewTodo(fmt.Sprintf("task number %d", i))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := NewWriter(io.Discard).WriteAll(tasks); err != nil {
			b.Fatalf("WriteAll failed: %v", err)
		}
	}
}
