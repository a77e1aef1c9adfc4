package financisto

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
)

// ParseError reports an unparseable or missing field in a backup record.
// Parse errors are fatal: they abort the whole import.
type ParseError struct {
	Table string
	Field string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s record: field %q: %v", e.Table, e.Field, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// parseBackup streams the backup's record format into an accumulator.
//
// Lines starting with "$" are control lines: "$$" closes the current record
// (if it has at least one field) and dispatches it; any other "$"-line opens
// a new record for the named table. Financisto writes record openers as
// "$ENTITY:tablename"; the bare "$tablename" form is accepted too. Non-control
// lines inside a record are "key:value" pairs split at the first colon; later
// duplicates overwrite earlier values. Unrecognized tables are ignored.
func parseBackup(r io.Reader, log *zap.SugaredLogger) (*backupData, error) {
	data := newBackupData(log)

	var (
		table  string
		fields map[string]string
		open   bool
	)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()

		if strings.HasPrefix(line, "$") {
			if line == "$$" {
				if open && len(fields) > 0 {
					if err := data.processEntry(table, fields); err != nil {
						return nil, err
					}
					table = ""
					open = false
				}
				continue
			}
			if i := strings.Index(line, ":"); i > 0 {
				table = line[i+1:]
			} else {
				table = line[1:]
			}
			open = true
			fields = make(map[string]string)
			continue
		}

		if !open {
			continue
		}
		if i := strings.Index(line, ":"); i > 0 {
			fields[line[:i]] = line[i+1:]
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	return data, nil
}
