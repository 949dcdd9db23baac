// internal/handlers/client.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nexcrm/crm-backend/internal/i18n"
	"github.com/nexcrm/crm-backend/internal/services"
	"github.com/nexcrm/crm-backend/internal/utils"
)

type ClientHandler struct {
	clientService   *services.ClientService
	purchaseService *services.PurchaseService
}

func NewClientHandler(clientService *services.ClientService, purchaseService *services.PurchaseService) *ClientHandler {
	return &ClientHandler{
		clientService:   clientService,
		purchaseService: purchaseService,
	}
}

// POST /clients
func (h *ClientHandler) CreateClient(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	client, err := h.clientService.CreateClient(userID, &req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyClientCreated),
		"client":  client,
	})
}

// GET /clients
func (h *ClientHandler) ListClients(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)

	clients, total, err := h.clientService.ListClients(userID, params)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(clients, total, params))
}

// GET /clients/:id
func (h *ClientHandler) GetClient(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid client ID", nil)
		return
	}

	client, err := h.clientService.GetClient(id, userID)
	if err != nil {
		utils.NotFoundResponse(c, "client")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"client": client,
	})
}

// PUT /clients/:id
func (h *ClientHandler) UpdateClient(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid client ID", nil)
		return
	}

	var req services.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	client, err := h.clientService.UpdateClient(id, userID, &req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyClientUpdated),
		"client":  client,
	})
}

// DELETE /clients/:id
func (h *ClientHandler) DeleteClient(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid client ID", nil)
		return
	}

	if err := h.clientService.DeleteClient(id, userID); err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyClientDeleted),
	})
}

// POST /clients/:id/comments
func (h *ClientHandler) AddComment(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid client ID", nil)
		return
	}

	var req services.AddClientCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	comment, err := h.clientService.AddComment(clientID, userID, &req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyClientCommentAdded),
		"comment": comment,
	})
}

// DELETE /clients/:id/comments/:commentId
func (h *ClientHandler) DeleteComment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid client ID", nil)
		return
	}

	commentID, err := uuid.Parse(c.Param("commentId"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid comment ID", nil)
		return
	}

	if err := h.clientService.DeleteComment(clientID, commentID, userID); err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": "Comment deleted",
	})
}

// POST /clients/:id/files
func (h *ClientHandler) UploadFile(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid client ID", nil)
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationRequired, "file"), err.Error())
		return
	}
	defer file.Close()

	clientFile, err := h.clientService.UploadFile(clientID, userID, file, header)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyClientFileUploaded),
		"file":    clientFile,
	})
}

// DELETE /clients/:id/files/:fileId
func (h *ClientHandler) DeleteFile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid client ID", nil)
		return
	}

	fileID, err := uuid.Parse(c.Param("fileId"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid file ID", nil)
		return
	}

	if err := h.clientService.DeleteFile(clientID, fileID, userID); err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": "File deleted",
	})
}

// GET /clients/:id/purchases
func (h *ClientHandler) ListClientPurchases(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid client ID", nil)
		return
	}

	params := utils.GetPaginationParams(c)

	purchases, total, err := h.purchaseService.ListClientPurchases(clientID, userID, params)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(purchases, total, params))
}
