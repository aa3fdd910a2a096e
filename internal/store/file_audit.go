// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/MKhiriev/go-secure-api/internal/logger"
	"github.com/MKhiriev/go-secure-api/models"
)

// jsonlFile appends one JSON document per line to a file. Each line is
// written with a single Write call under the mutex, so concurrent
// appenders never interleave.
type jsonlFile struct {
	mu     sync.Mutex
	file   *os.File
	closed bool
}

func openJSONLFile(path string) (*jsonlFile, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("error creating log directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("error opening log file %s: %w", path, err)
	}

	return &jsonlFile{file: f}, nil
}

func (j *jsonlFile) append(v any) error {
	line, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncodingEntry, err)
	}
	line = append(line, '\n')

	j.mu.Lock()
	defer j.mu.Unlock()

	if j.closed {
		return ErrSinkClosed
	}
	if _, err := j.file.Write(line); err != nil {
		return fmt.Errorf("%w: %w", ErrWritingEntry, err)
	}
	return nil
}

func (j *jsonlFile) close() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.closed {
		return nil
	}
	j.closed = true
	return j.file.Close()
}

// fileAuditStorage writes access records and security alerts to two JSON
// Lines files.
type fileAuditStorage struct {
	access   *jsonlFile
	security *jsonlFile
	logger   *logger.Logger
}

// NewFileAuditStorage opens (creating when missing) the access and security
// log files in append mode.
func NewFileAuditStorage(accessPath, securityPath string, log *logger.Logger) (AuditStorage, error) {
	access, err := openJSONLFile(accessPath)
	if err != nil {
		return nil, err
	}

	security, err := openJSONLFile(securityPath)
	if err != nil {
		_ = access.close()
		return nil, err
	}

	log.Debug().Str("access", accessPath).Str("security", securityPath).Msg("opened file audit storage")
	return &fileAuditStorage{access: access, security: security, logger: log}, nil
}

func (s *fileAuditStorage) AppendRecord(_ context.Context, record models.AuditRecord) error {
	return s.access.append(record)
}

func (s *fileAuditStorage) AppendAlert(_ context.Context, alert models.SecurityAlert) error {
	return s.security.append(alert)
}

func (s *fileAuditStorage) Close() error {
	accessErr := s.access.close()
	securityErr := s.security.close()
	if accessErr != nil {
		return accessErr
	}
	return securityErr
}
