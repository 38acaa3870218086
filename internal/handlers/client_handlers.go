package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/obrunogonzaga/clinic-appointment-system-sub001/internal/models"
	"github.com/obrunogonzaga/clinic-appointment-system-sub001/internal/services"
	"github.com/obrunogonzaga/clinic-appointment-system-sub001/pkg/utils"
)

// ClientHandler holds the client service.
type ClientHandler struct {
	clientService services.ClientService
}

// NewClientHandler creates a new ClientHandler.
func NewClientHandler(cs services.ClientService) *ClientHandler {
	return &ClientHandler{clientService: cs}
}

// CreateClient handles manual client registration.
func (h *ClientHandler) CreateClient(c *gin.Context) {
	var req services.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreateClient: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	client, err := h.clientService.CreateClient(req)
	if err != nil {
		utils.LogError(err, "CreateClient: Error from clientService.CreateClient")
		if errors.Is(err, services.ErrClientCPFExists) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "A client with this CPF already exists.", err.Error()))
		} else if errors.Is(err, services.ErrClientValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid client data.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create client.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, client)
}

// GetClients handles listing clients with search and pagination.
func (h *ClientHandler) GetClients(c *gin.Context) {
	page, pageSize, ok := parsePagination(c)
	if !ok {
		return
	}

	clients, totalCount, err := h.clientService.GetClients(page, pageSize, searchTermQuery(c))
	if err != nil {
		utils.LogError(err, "GetClients: Error from clientService.GetClients")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch clients.", "Internal error"))
		return
	}
	if clients == nil {
		clients = []models.Client{}
	}
	respondPaginated(c, clients, totalCount, page, pageSize)
}

// GetClientByID handles fetching a single client.
func (h *ClientHandler) GetClientByID(c *gin.Context) {
	clientID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	client, err := h.clientService.GetClientByID(clientID)
	if err != nil {
		utils.LogError(err, "GetClientByID: Error from clientService.GetClientByID")
		if errors.Is(err, services.ErrClientNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Client not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch client.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, client)
}

// GetClientByCPF handles fetching a single client by CPF.
func (h *ClientHandler) GetClientByCPF(c *gin.Context) {
	rawCPF := c.Param("cpf")
	if rawCPF == "" {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "CPF path parameter is required.", ""))
		return
	}

	client, err := h.clientService.GetClientByCPF(rawCPF)
	if err != nil {
		utils.LogError(err, "GetClientByCPF: Error from clientService.GetClientByCPF")
		if errors.Is(err, services.ErrClientNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Client not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch client.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, client)
}

// UpdateClient handles partial updates of a client.
func (h *ClientHandler) UpdateClient(c *gin.Context) {
	clientID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "UpdateClient: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	client, err := h.clientService.UpdateClient(clientID, req)
	if err != nil {
		utils.LogError(err, "UpdateClient: Error from clientService.UpdateClient")
		if errors.Is(err, services.ErrClientNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Client not found to update.", err.Error()))
		} else if errors.Is(err, services.ErrClientValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid client data.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update client.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, client)
}

// DeleteClient handles administrative removal of a client.
func (h *ClientHandler) DeleteClient(c *gin.Context) {
	clientID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.clientService.DeleteClient(clientID); err != nil {
		utils.LogError(err, "DeleteClient: Error from clientService.DeleteClient")
		if errors.Is(err, services.ErrClientNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Client not found to delete.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete client.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Client deleted successfully"})
}
