package directory

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"keyshare/internal/domain"
	"keyshare/internal/observability/logging"
)

// Server answers key queries from an in-memory snapshot. It is meant for
// local development and tests; it does no authentication.
type Server struct {
	mu   sync.RWMutex
	snap domain.KeyQueryResponse
	log  *slog.Logger
}

// NewServer returns a Server publishing snap.
func NewServer(snap domain.KeyQueryResponse, log *slog.Logger) *Server {
	if log == nil {
		log = logging.Discard()
	}
	return &Server{snap: snap, log: log}
}

// Replace swaps the published snapshot.
func (s *Server) Replace(snap domain.KeyQueryResponse) {
	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()
}

// ServeHTTP handles POST QueryPath.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != QueryPath {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	defer r.Body.Close()

	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.RLock()
	resp := filter(s.snap, req.DeviceKeys)
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.log.Error("encode key query response", "err", err)
		return
	}
	s.log.Info("keys queried", "users", len(req.DeviceKeys), "returned", len(resp.DeviceKeys))
}

// filter restricts snap to the requested users and, where a device list is
// given, to those devices. Records are copied by value so their original
// bytes, and with them their signatures, are served unchanged.
func filter(snap domain.KeyQueryResponse, want map[domain.UserID][]domain.DeviceID) domain.KeyQueryResponse {
	out := domain.KeyQueryResponse{
		DeviceKeys:      make(map[domain.UserID]map[domain.DeviceID]domain.DeviceKeys, len(want)),
		MasterKeys:      map[domain.UserID]domain.CrossSigningKey{},
		SelfSigningKeys: map[domain.UserID]domain.CrossSigningKey{},
		UserSigningKeys: map[domain.UserID]domain.CrossSigningKey{},
	}
	for user, ids := range want {
		devices, ok := snap.DeviceKeys[user]
		if ok {
			sel := make(map[domain.DeviceID]domain.DeviceKeys, len(devices))
			if len(ids) == 0 {
				for id, d := range devices {
					sel[id] = d
				}
			} else {
				for _, id := range ids {
					if d, ok := devices[id]; ok {
						sel[id] = d
					}
				}
			}
			out.DeviceKeys[user] = sel
		}
		if k, ok := snap.MasterKeys[user]; ok {
			out.MasterKeys[user] = k
		}
		if k, ok := snap.SelfSigningKeys[user]; ok {
			out.SelfSigningKeys[user] = k
		}
		if k, ok := snap.UserSigningKeys[user]; ok {
			out.UserSigningKeys[user] = k
		}
	}
	return out
}
