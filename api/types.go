package api

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	systemHandler    systemHandler
	postHandler      postHandler
	publicHandler    publicHandler
	commentHandler   commentHandler
	dashboardHandler dashboardHandler
	userHandler      userHandler
}

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Message string `json:"message" example:"Post not found!"`
	Exists  bool   `json:"exists,omitempty" example:"true"`
}

// HealthResponse is returned by the liveness check
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Uptime string `json:"uptime" example:"1h2m3s"`
}
