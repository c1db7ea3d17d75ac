package lsp

import (
	"rms-check/internal/driver"
	"rms-check/internal/driver/diagnose"
	"rms-check/internal/source"
)

func (s *Server) currentSnapshot() *diagnose.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastGoodSnapshot
}

func (s *Server) snapshotForURI(uri string) *diagnose.Snapshot {
	_ = uri
	return s.currentSnapshot()
}

// snapshotFile resolves uri to the Result and File it produced within
// snapshot, or (nil, nil) if the document isn't part of the last good
// analysis (e.g. it isn't a .rms file, or analysis hasn't completed yet).
func snapshotFile(snapshot *diagnose.Snapshot, uri string) (*driver.Result, *source.File) {
	if snapshot == nil {
		return nil, nil
	}
	path := uriToPath(uri)
	if path == "" {
		return nil, nil
	}
	canon := canonicalPath(path)
	result, ok := snapshot.Results[canon]
	if !ok || result == nil {
		return nil, nil
	}
	return result, snapshot.FileSet.Get(result.FileID)
}

func (s *Server) currentSnapshotVersion() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotVersion
}

func (s *Server) currentTrace() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.traceLSP
}

func (s *Server) currentDocState(uri string) (docState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.docStateLocked(uri)
}

func (s *Server) docStateLocked(uri string) (docState, bool) {
	version, ok := s.versions[uri]
	if !ok {
		return docState{}, false
	}
	return docState{version: version, snapshotID: s.docSnapshots[uri]}, true
}
