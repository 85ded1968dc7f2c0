package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/nyx-labs/pointcloud/pkg/api/grpc/pcpb"
)

// Handler wraps the gRPC client and provides HTTP handlers
type Handler struct {
	client pcpb.PointCloudServiceClient
}

// NewHandler creates a new REST API handler
func NewHandler(client pcpb.PointCloudServiceClient) *Handler {
	return &Handler{
		client: client,
	}
}

type datasetNameKey struct{}

// withDatasetName attaches the dataset name parsed from the URL path to the
// request context so handlers don't need to re-parse it.
func withDatasetName(r *http.Request, name string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), datasetNameKey{}, name))
}

func datasetNameFromRequest(r *http.Request) string {
	name, _ := r.Context().Value(datasetNameKey{}).(string)
	return name
}

// HealthCheck handles GET /v1/health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	resp, err := h.client.HealthCheck(r.Context(), &pcpb.HealthCheckRequest{})
	if err != nil {
		writeError(w, fmt.Sprintf("Health check failed: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, resp, http.StatusOK)
}

// CreateDataset handles POST /v1/datasets
func (h *Handler) CreateDataset(w http.ResponseWriter, r *http.Request) {
	var req pcpb.CreateDatasetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	resp, err := h.client.CreateDataset(r.Context(), &req)
	if err != nil {
		writeError(w, fmt.Sprintf("Create dataset failed: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, resp, http.StatusCreated)
}

// ListDatasets handles GET /v1/datasets
func (h *Handler) ListDatasets(w http.ResponseWriter, r *http.Request) {
	resp, err := h.client.ListDatasets(r.Context(), &pcpb.ListDatasetsRequest{})
	if err != nil {
		writeError(w, fmt.Sprintf("List datasets failed: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, resp, http.StatusOK)
}

// DeleteDataset handles DELETE /v1/datasets/{name}
func (h *Handler) DeleteDataset(w http.ResponseWriter, r *http.Request) {
	resp, err := h.client.DeleteDataset(r.Context(), &pcpb.DeleteDatasetRequest{Name: datasetNameFromRequest(r)})
	if err != nil {
		writeError(w, fmt.Sprintf("Delete dataset failed: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, resp, http.StatusOK)
}

// UploadPoints handles POST /v1/datasets/{name}/points
func (h *Handler) UploadPoints(w http.ResponseWriter, r *http.Request) {
	var req pcpb.UploadPointsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	req.Dataset = datasetNameFromRequest(r)

	resp, err := h.client.UploadPoints(r.Context(), &req)
	if err != nil {
		writeError(w, fmt.Sprintf("Upload points failed: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, resp, http.StatusCreated)
}

// Query handles POST /v1/datasets/{name}/query
func (h *Handler) Query(w http.ResponseWriter, r *http.Request) {
	var req pcpb.QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	req.Dataset = datasetNameFromRequest(r)

	resp, err := h.client.Query(r.Context(), &req)
	if err != nil {
		writeError(w, fmt.Sprintf("Query failed: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, resp, http.StatusOK)
}

// FitModel handles POST /v1/datasets/{name}/fit-model
func (h *Handler) FitModel(w http.ResponseWriter, r *http.Request) {
	var req pcpb.FitModelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	req.Dataset = datasetNameFromRequest(r)

	resp, err := h.client.FitModel(r.Context(), &req)
	if err != nil {
		writeError(w, fmt.Sprintf("Fit model failed: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, resp, http.StatusOK)
}

// Cluster handles POST /v1/datasets/{name}/cluster
func (h *Handler) Cluster(w http.ResponseWriter, r *http.Request) {
	var req pcpb.ClusterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	req.Dataset = datasetNameFromRequest(r)

	resp, err := h.client.Cluster(r.Context(), &req)
	if err != nil {
		writeError(w, fmt.Sprintf("Cluster failed: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, resp, http.StatusOK)
}

// ConvexHull handles POST /v1/datasets/{name}/convex-hull
func (h *Handler) ConvexHull(w http.ResponseWriter, r *http.Request) {
	req := pcpb.ConvexHullRequest{Dataset: datasetNameFromRequest(r)}

	resp, err := h.client.ConvexHull(r.Context(), &req)
	if err != nil {
		writeError(w, fmt.Sprintf("Convex hull failed: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, resp, http.StatusOK)
}

// Triangulate handles POST /v1/datasets/{name}/triangulate
func (h *Handler) Triangulate(w http.ResponseWriter, r *http.Request) {
	var req pcpb.TriangulateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	req.Dataset = datasetNameFromRequest(r)

	resp, err := h.client.Triangulate(r.Context(), &req)
	if err != nil {
		writeError(w, fmt.Sprintf("Triangulate failed: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, resp, http.StatusOK)
}

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, fmt.Sprintf("Failed to encode response: %v", err), http.StatusInternalServerError)
	}
}

// writeError writes a JSON error response
func writeError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error":  message,
		"status": statusCode,
	})
}

// ServeDocs serves the OpenAPI/Swagger documentation
func ServeDocs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	content, err := os.ReadFile("docs/api/openapi.yaml")
	if err != nil {
		writeError(w, "OpenAPI spec not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/x-yaml")
	w.WriteHeader(http.StatusOK)
	w.Write(content)
}

// ServeSwaggerUI serves the Swagger UI HTML page
func ServeSwaggerUI(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	html := `<!DOCTYPE html>
<html>
<head>
    <title>Point Cloud API Documentation</title>
    <link rel="stylesheet" type="text/css" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
    <script>
        window.onload = function() {
            SwaggerUIBundle({
                url: "/docs/openapi.yaml",
                dom_id: '#swagger-ui',
                presets: [
                    SwaggerUIBundle.presets.apis,
                    SwaggerUIBundle.SwaggerUIStandalonePreset
                ],
                layout: "BaseLayout"
            });
        };
    </script>
</body>
</html>`

	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(html))
}
