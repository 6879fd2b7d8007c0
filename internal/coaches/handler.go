package coaches

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/2beens/gymreports/internal/telemetry/metrics"
	"github.com/2beens/gymreports/internal/telemetry/tracing"
	"github.com/2beens/gymreports/pkg"

	"github.com/coocood/freecache"
	"github.com/go-playground/validator/v10"
	log "github.com/sirupsen/logrus"
)

const (
	MsgCoachAdded     = "教練新增成功"
	MsgFieldsRequired = "姓名和Email為必填項"
	MsgEmailTaken     = "此Email已被註冊"

	listCacheKey    = "coaches"
	listCacheExpire = 60 // seconds
	listCacheSize   = 1024 * 1024
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=coaches_test

type coachesRepo interface {
	Add(ctx context.Context, coach Coach) (*Coach, error)
	List(ctx context.Context) ([]Coach, error)
}

type AddRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required"`
	Phone string `json:"phone"`
}

type AddResponse struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type Handler struct {
	repo      coachesRepo
	listCache *freecache.Cache
	validate  *validator.Validate
	metrics   *metrics.Manager
}

func NewHandler(repo coachesRepo, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		repo:      repo,
		listCache: freecache.NewCache(listCacheSize),
		validate:  validator.New(),
		metrics:   metricsManager,
	}
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.coaches.list")
	defer span.End()

	if cached, err := h.listCache.Get([]byte(listCacheKey)); err == nil {
		pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, cached)
		return
	}

	coaches, err := h.repo.List(ctx)
	if err != nil {
		log.Errorf("list coaches: %s", err)
		pkg.WriteJSON(w, ErrorResponse{Error: err.Error()}, http.StatusInternalServerError)
		return
	}

	respBytes, err := json.Marshal(coaches)
	if err != nil {
		log.Errorf("marshal coaches: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if err := h.listCache.Set([]byte(listCacheKey), respBytes, listCacheExpire); err != nil {
		log.Warnf("cache coaches list: %s", err)
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respBytes)
}

func (h *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.coaches.add")
	defer span.End()

	var req AddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Debugf("add coach, unmarshal json body: %s", err)
		pkg.WriteJSON(w, ErrorResponse{Error: MsgFieldsRequired}, http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		pkg.WriteJSON(w, ErrorResponse{Error: MsgFieldsRequired}, http.StatusBadRequest)
		return
	}

	coach := Coach{
		Name:  req.Name,
		Email: req.Email,
	}
	if req.Phone != "" {
		coach.Phone = &req.Phone
	}

	added, err := h.repo.Add(ctx, coach)
	if err != nil {
		if errors.Is(err, ErrCoachEmailTaken) {
			pkg.WriteJSON(w, ErrorResponse{Error: MsgEmailTaken}, http.StatusConflict)
			return
		}
		log.Errorf("add coach [%s]: %s", req.Email, err)
		pkg.WriteJSON(w, ErrorResponse{Error: err.Error()}, http.StatusInternalServerError)
		return
	}

	h.listCache.Del([]byte(listCacheKey))
	h.metrics.CounterCoachesAdded.Inc()

	log.Printf("new coach added: [%s] [%s]: %d", added.Name, added.Email, added.ID)
	pkg.WriteJSON(w, AddResponse{
		ID:      added.ID,
		Message: MsgCoachAdded,
	}, http.StatusCreated)
}
