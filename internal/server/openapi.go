package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"
)

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "Cycling Imposter API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Backend API for the Cycling Imposter daily quiz.")

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.SetDescription("Returns the health status of backend dependencies.")
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getHealthz)

	// GET /api/puzzle/today
	getPuzzle, _ := r.NewOperationContext(http.MethodGet, "/api/puzzle/today")
	getPuzzle.SetSummary("Today's puzzle")
	getPuzzle.SetDescription("Returns today's statement and rider grid. The answer key is never included.")
	getPuzzle.AddRespStructure(PuzzleResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getPuzzle)

	// GET /api/puzzle/today/global
	getGlobal, _ := r.NewOperationContext(http.MethodGet, "/api/puzzle/today/global")
	getGlobal.SetSummary("Global score distribution")
	getGlobal.SetDescription("How all devices scored on today's puzzle. Empty when the feature is disabled.")
	getGlobal.AddRespStructure(GlobalStatsResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getGlobal)

	// GET /api/game/state
	getState, _ := r.NewOperationContext(http.MethodGet, "/api/game/state")
	getState.SetSummary("Session state")
	getState.SetDescription("Whether this device already played today; restores the stored outcome when locked.")
	getState.AddRespStructure(GameStateResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getState)

	// POST /api/game/submit
	postSubmit, _ := r.NewOperationContext(http.MethodPost, "/api/game/submit")
	postSubmit.SetSummary("Submit selection")
	postSubmit.SetDescription("Grades the marked imposters against today's puzzle. One submission per device per day.")
	postSubmit.AddReqStructure(SubmitRequest{})
	postSubmit.AddRespStructure(SubmitResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postSubmit.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(postSubmit)

	// GET /api/game/share
	getShare, _ := r.NewOperationContext(http.MethodGet, "/api/game/share")
	getShare.SetSummary("Share text")
	getShare.SetDescription("Copyable summary of today's score and the current streak.")
	getShare.AddRespStructure(ShareResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getShare.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getShare)

	// POST /api/admin/login
	postLogin, _ := r.NewOperationContext(http.MethodPost, "/api/admin/login")
	postLogin.SetSummary("Admin login")
	postLogin.SetDescription("Authenticate with username and password. Sets admin_session cookie.")
	postLogin.AddReqStructure(AdminLoginRequest{})
	postLogin.AddRespStructure(AdminMeResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postLogin.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(postLogin)

	// POST /api/admin/logout
	postLogout, _ := r.NewOperationContext(http.MethodPost, "/api/admin/logout")
	postLogout.SetSummary("Admin logout")
	postLogout.SetDescription("Clears admin session and cookie.")
	postLogout.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(postLogout)

	// GET /api/admin/me
	getMe, _ := r.NewOperationContext(http.MethodGet, "/api/admin/me")
	getMe.SetSummary("Current admin")
	getMe.SetDescription("Returns the authenticated operator. Requires admin_session cookie.")
	getMe.AddRespStructure(AdminMeResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getMe.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(getMe)

	// GET /api/admin/events
	getEvents, _ := r.NewOperationContext(http.MethodGet, "/api/admin/events")
	getEvents.SetSummary("Submission feed")
	getEvents.SetDescription("Server-Sent Events stream of live submissions. Requires admin_session cookie.")
	getEvents.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK),
		openapi.WithContentType("text/event-stream"))
	_ = r.AddOperation(getEvents)

	// GET /api/admin/cyclists
	listCyclists, _ := r.NewOperationContext(http.MethodGet, "/api/admin/cyclists")
	listCyclists.SetSummary("List cyclists")
	listCyclists.AddRespStructure([]CyclistRequest{}, openapi.WithHTTPStatus(http.StatusOK))
	listCyclists.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(listCyclists)

	// POST /api/admin/cyclists
	createCyclist, _ := r.NewOperationContext(http.MethodPost, "/api/admin/cyclists")
	createCyclist.SetSummary("Create cyclist")
	createCyclist.AddReqStructure(CyclistRequest{})
	createCyclist.AddRespStructure(CyclistRequest{}, openapi.WithHTTPStatus(http.StatusCreated))
	createCyclist.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(createCyclist)

	// PUT /api/admin/cyclists/{id}
	updateCyclist, _ := r.NewOperationContext(http.MethodPut, "/api/admin/cyclists/{id}")
	updateCyclist.SetSummary("Update cyclist")
	updateCyclist.AddReqStructure(CyclistRequest{})
	updateCyclist.AddRespStructure(CyclistRequest{}, openapi.WithHTTPStatus(http.StatusOK))
	updateCyclist.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(updateCyclist)

	// DELETE /api/admin/cyclists/{id}
	deleteCyclist, _ := r.NewOperationContext(http.MethodDelete, "/api/admin/cyclists/{id}")
	deleteCyclist.SetSummary("Delete cyclist")
	deleteCyclist.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusNoContent))
	deleteCyclist.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(deleteCyclist)

	// GET /api/admin/puzzles/{date}
	getPuzzleByDate, _ := r.NewOperationContext(http.MethodGet, "/api/admin/puzzles/{date}")
	getPuzzleByDate.SetSummary("Get scheduled puzzle")
	getPuzzleByDate.AddRespStructure(PuzzleRequest{}, openapi.WithHTTPStatus(http.StatusOK))
	getPuzzleByDate.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getPuzzleByDate)

	// PUT /api/admin/puzzles/{date}
	putPuzzle, _ := r.NewOperationContext(http.MethodPut, "/api/admin/puzzles/{date}")
	putPuzzle.SetSummary("Schedule puzzle")
	putPuzzle.SetDescription("Creates or replaces the puzzle for a calendar date: statement plus exactly 8 slots.")
	putPuzzle.AddReqStructure(PuzzleRequest{})
	putPuzzle.AddRespStructure(PuzzleRequest{}, openapi.WithHTTPStatus(http.StatusOK))
	putPuzzle.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(putPuzzle)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Write(data)
	}
}
