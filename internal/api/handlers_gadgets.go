package api

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"gadgetd/internal/models"
)

// codeNames is the pool a new gadget's name is drawn from when the
// caller does not provide one.
var codeNames = []string{"The Nightingale", "The Kraken", "The Shadow"}

var errGadgetNotFound = errors.New("gadget not found")

// gadgetView augments a stored gadget with the presentation-only mission
// success probability. The probability is recomputed on every read and
// never persisted.
type gadgetView struct {
	models.Gadget
	SuccessProbability string `json:"successProbability"`
}

func newGadgetView(g models.Gadget) gadgetView {
	return gadgetView{
		Gadget:             g,
		SuccessProbability: fmt.Sprintf("%d%%", rand.IntN(100)),
	}
}

func (a *API) handleListGadgets(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	query := a.db.WithContext(ctx)
	if status := strings.TrimSpace(r.URL.Query().Get("status")); status != "" {
		// Applied verbatim: an unrecognised value simply matches nothing.
		query = query.Where("status = ?", status)
	}

	var gadgets []models.Gadget
	if err := query.Order("created_at").Find(&gadgets).Error; err != nil {
		respondServerError(w, err)
		return
	}

	views := make([]gadgetView, 0, len(gadgets))
	for _, g := range gadgets {
		views = append(views, newGadgetView(g))
	}

	respondJSON(w, http.StatusOK, views)
}

func (a *API) handleCreateGadget(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name   string `json:"name"`
		Status string `json:"status"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		req.Name = codeNames[rand.IntN(len(codeNames))]
	}

	status := models.StatusAvailable
	if req.Status != "" {
		status = models.GadgetStatus(req.Status)
		if !status.Valid() {
			respondError(w, http.StatusBadRequest, errors.New("invalid status provided"))
			return
		}
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	now := time.Now().UTC()
	gadget := models.Gadget{
		ID:        uuid.New(),
		Name:      req.Name,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := a.db.WithContext(ctx).Create(&gadget).Error; err != nil {
		respondServerError(w, err)
		return
	}

	a.audit(r, "gadget.create", gadget.ID.String(), map[string]any{
		"name":   gadget.Name,
		"status": gadget.Status,
	})

	respondJSON(w, http.StatusCreated, gadget)
}

func (a *API) handleUpdateGadget(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name   *string `json:"name"`
		Status *string `json:"status"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	updates := map[string]any{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			respondError(w, http.StatusBadRequest, errors.New("name must not be empty"))
			return
		}
		updates["name"] = name
	}
	if req.Status != nil {
		// Any status may be set to any other, including backward jumps.
		// Operator override is intentional; only the enum itself is closed.
		status := models.GadgetStatus(*req.Status)
		if !status.Valid() {
			respondError(w, http.StatusBadRequest, errors.New("invalid status provided"))
			return
		}
		updates["status"] = status
	}

	gadget, err := a.mutateGadget(r, chi.URLParam(r, "id"), updates)
	if err != nil {
		if errors.Is(err, errGadgetNotFound) {
			respondError(w, http.StatusNotFound, err)
			return
		}
		respondServerError(w, err)
		return
	}

	a.audit(r, "gadget.update", gadget.ID.String(), updates)

	respondJSON(w, http.StatusOK, gadget)
}

func (a *API) handleDecommissionGadget(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()
	gadget, err := a.mutateGadget(r, chi.URLParam(r, "id"), map[string]any{
		"status":            models.StatusDecommissioned,
		"decommissioned_at": now,
	})
	if err != nil {
		if errors.Is(err, errGadgetNotFound) {
			respondError(w, http.StatusNotFound, err)
			return
		}
		respondServerError(w, err)
		return
	}

	a.audit(r, "gadget.decommission", gadget.ID.String(), nil)

	respondJSON(w, http.StatusOK, map[string]any{
		"message": "gadget has been decommissioned",
		"gadget": map[string]any{
			"id":               gadget.ID,
			"name":             gadget.Name,
			"status":           gadget.Status,
			"decommissionedAt": gadget.DecommissionedAt,
		},
	})
}

func (a *API) handleSelfDestruct(w http.ResponseWriter, r *http.Request) {
	gadget, err := a.mutateGadget(r, chi.URLParam(r, "id"), map[string]any{
		"status": models.StatusDestroyed,
	})
	if err != nil {
		if errors.Is(err, errGadgetNotFound) {
			respondError(w, http.StatusNotFound, err)
			return
		}
		respondServerError(w, err)
		return
	}

	// A one-time display artifact: the first segment of a fresh random
	// UUID. Not stored and not verifiable later.
	confirmationCode, _, _ := strings.Cut(uuid.NewString(), "-")

	a.audit(r, "gadget.self_destruct", gadget.ID.String(), nil)

	respondJSON(w, http.StatusOK, map[string]any{
		"message":          "self-destruct sequence initiated",
		"confirmationCode": confirmationCode,
		"gadget":           gadget,
	})
}

// mutateGadget applies a read-modify-write on a single gadget, serialized
// per gadget id so concurrent mutations cannot interleave. It stamps
// updated_at and returns the reloaded record.
func (a *API) mutateGadget(r *http.Request, rawID string, updates map[string]any) (models.Gadget, error) {
	id, err := uuid.Parse(strings.TrimSpace(rawID))
	if err != nil {
		// An unparsable id cannot name any gadget.
		return models.Gadget{}, errGadgetNotFound
	}

	unlock := a.locks.lock(id)
	defer unlock()

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	orm := a.db.WithContext(ctx)

	var gadget models.Gadget
	if err := orm.Where("id = ?", id).First(&gadget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Gadget{}, errGadgetNotFound
		}
		return models.Gadget{}, err
	}

	if len(updates) > 0 {
		updates["updated_at"] = time.Now().UTC()
		if err := orm.Model(&gadget).Updates(updates).Error; err != nil {
			return models.Gadget{}, err
		}
		if err := orm.Where("id = ?", id).First(&gadget).Error; err != nil {
			return models.Gadget{}, err
		}
	}

	return gadget, nil
}
