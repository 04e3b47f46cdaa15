package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Romi-2023/kopalnia-wiedzy/internal/domain"
)

// ─── Learners ───────────────────────────────────────────────────────────────

type registerRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	p, err := s.engine.Register(req.Name)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	p, err := s.engine.Profile(chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"profile": p,
		"level":   domain.LevelForXP(p.XP),
	})
}

// ─── Tasks and Activity ─────────────────────────────────────────────────────

func (s *Server) handleCompleteTask(w http.ResponseWriter, r *http.Request) {
	p, err := s.engine.CompleteTask(chi.URLParam(r, "id"), chi.URLParam(r, "taskID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"profile": p,
		"level":   domain.LevelForXP(p.XP),
	})
}

func (s *Server) handleActivity(w http.ResponseWriter, r *http.Request) {
	update, err := s.engine.RecordActivity(chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, update)
}

// ─── Daily Challenge ────────────────────────────────────────────────────────

func (s *Server) handleChallenge(w http.ResponseWriter, r *http.Request) {
	task, err := s.engine.TodaysChallenge(chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (s *Server) handleGlobalChallenge(w http.ResponseWriter, r *http.Request) {
	task, err := s.engine.TodaysChallenge("")
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// ─── Reward Claims ──────────────────────────────────────────────────────────

type claimRequest struct {
	Kind      string `json:"kind"`
	PeriodKey string `json:"period_key"`
}

func (s *Server) handleClaim(w http.ResponseWriter, r *http.Request) {
	var req claimRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	res, err := s.engine.ClaimReward(chi.URLParam(r, "id"), domain.RewardKind(req.Kind), req.PeriodKey)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleClaimStatus(w http.ResponseWriter, r *http.Request) {
	kind := r.URL.Query().Get("kind")
	periodKey := r.URL.Query().Get("period_key")

	claimed, amount, err := s.engine.ClaimStatus(chi.URLParam(r, "id"), domain.RewardKind(kind), periodKey)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"claimed": claimed,
		"amount":  amount,
	})
}

// ─── Unlocks and Rankings ───────────────────────────────────────────────────

func (s *Server) handleUnlocks(w http.ResponseWriter, r *http.Request) {
	state, err := s.engine.UnlockedState(chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := s.engine.Leaderboard()
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"entries": entries})
}

func (s *Server) handleHallOfFame(w http.ResponseWriter, r *http.Request) {
	rows, err := s.engine.TopLearners()
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"rows": rows})
}

// ─── Classes ────────────────────────────────────────────────────────────────

type createClassRequest struct {
	Label     string `json:"label"`
	CreatedBy string `json:"created_by"`
}

func (s *Server) handleCreateClass(w http.ResponseWriter, r *http.Request) {
	var req createClassRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	c, err := s.engine.CreateClass(req.Label, req.CreatedBy)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

type joinClassRequest struct {
	Code string `json:"code"`
}

func (s *Server) handleJoinClass(w http.ResponseWriter, r *http.Request) {
	var req joinClassRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	p, err := s.engine.JoinClass(chi.URLParam(r, "id"), req.Code)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}
