package tasklist

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"ankivoice/internal/fileutil"
	"ankivoice/internal/services"
)

const separator = "|"

// Task pairs an audio filename with the text to synthesize into it.
type Task struct {
	Filename string `json:"filename"`
	Text     string `json:"text"`
}

// List is a decoded task list.
type List struct {
	Tasks []Task
	// Discarded counts non-blank lines that had no separator.
	Discarded int
}

// Encode writes one line per task.
func Encode(w io.Writer, tasks []Task) error {
	bw := bufio.NewWriter(w)
	for _, task := range tasks {
		if _, err := fmt.Fprintf(bw, "%s%s%s\n", task.Filename, separator, task.Text); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Write replaces the file at path with the encoded tasks.
func Write(path string, tasks []Task) error {
	var sb strings.Builder
	if err := Encode(&sb, tasks); err != nil {
		return err
	}
	if err := fileutil.WriteFileAtomic(path, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("write task list %s: %w", path, err)
	}
	return nil
}

// Decode parses tasks from r. Each line is split at the first separator so the
// text half may itself contain "|".
func Decode(r io.Reader) (List, error) {
	var list List
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		filename, text, ok := strings.Cut(line, separator)
		if !ok {
			list.Discarded++
			continue
		}
		list.Tasks = append(list.Tasks, Task{Filename: filename, Text: text})
	}
	if err := scanner.Err(); err != nil {
		return List{}, fmt.Errorf("scan task list: %w", err)
	}
	return list, nil
}

// Read loads the task list at path. A missing file is reported as
// services.ErrMissingResource.
func Read(path string) (List, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return List{}, services.Wrap(services.ErrMissingResource, "tasklist", "read", "file not found: "+path, err)
		}
		return List{}, fmt.Errorf("open task list %s: %w", path, err)
	}
	defer file.Close()
	return Decode(file)
}
