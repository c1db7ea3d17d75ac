package lsp

import (
	"encoding/json"

	"rms-check/internal/compat"
)

func (s *Server) handleDidChangeConfiguration(msg *rpcMessage) error {
	if len(msg.Params) == 0 {
		return nil
	}
	var params didChangeConfigurationParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return nil
	}
	s.applySettings(params.Settings)
	s.scheduleDiagnostics()
	return nil
}

func (s *Server) applySettings(raw json.RawMessage) {
	if len(raw) == 0 {
		return
	}
	var settings lspSettings
	if err := json.Unmarshal(raw, &settings); err != nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if settings.RMSCheck.Level != nil {
		if level, ok := compat.ParseLevel(*settings.RMSCheck.Level); ok {
			s.level = level
		}
	}
	if settings.RMSCheck.DisabledLints != nil {
		disabled := make(map[string]bool, len(settings.RMSCheck.DisabledLints))
		for _, id := range settings.RMSCheck.DisabledLints {
			disabled[id] = true
		}
		s.disabledLints = disabled
	}
}
