package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/inventario-funeraria/internal/application/dto"
	"github.com/jhoicas/inventario-funeraria/internal/application/ledger"
	"github.com/jhoicas/inventario-funeraria/internal/domain"
	"github.com/jhoicas/inventario-funeraria/internal/domain/entity"
	"github.com/jhoicas/inventario-funeraria/internal/domain/repository"
)

// InventoryHandler maneja las peticiones HTTP del ledger de inventario.
type InventoryHandler struct {
	appendUC    *ledger.AppendMovementUseCase
	projectorUC *ledger.StockProjectorUseCase
	reorderUC   *ledger.ReorderMonitorUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	appendUC *ledger.AppendMovementUseCase,
	projectorUC *ledger.StockProjectorUseCase,
	reorderUC *ledger.ReorderMonitorUseCase,
) *InventoryHandler {
	return &InventoryHandler{appendUC: appendUC, projectorUC: projectorUC, reorderUC: reorderUC}
}

// AppendMovement godoc
// @Summary      Registrar movimiento de stock
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AppendMovementRequest  true  "product_id, branch, movement_type, direction, quantity, reason; referencias opcionales"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Failure      504   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) AppendMovement(c *fiber.Ctx) error {
	var in dto.AppendMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}

	input := ledger.MovementInput{
		ProductID:        in.ProductID,
		Branch:           in.Branch,
		MovementType:     in.MovementType,
		Direction:        in.Direction,
		Quantity:         in.Quantity,
		Reason:           in.Reason,
		PurchaseOrderRef: in.PurchaseOrderRef,
		CaseRef:          in.CaseRef,
		Notes:            in.Notes,
	}
	if in.MovementDate != nil {
		input.MovementDate = *in.MovementDate
	}

	mov, err := h.appendUC.AppendMovement(c.Context(), input)
	if err != nil {
		return h.mapLedgerError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(mov))
}

// ListMovements godoc
// @Summary      Listar movimientos de un producto
// @Tags         inventory
// @Produce      json
// @Param        product_id     query  string  true   "product_id"
// @Param        branch         query  string  false  "Sede (vacío = todas)"
// @Param        movement_type  query  string  false  "Filtrar por tipo"
// @Param        from           query  string  false  "Desde (RFC3339)"
// @Param        to             query  string  false  "Hasta (RFC3339)"
// @Param        limit          query  int     false  "Límite"  default(50)
// @Param        offset         query  int     false  "Offset"  default(0)
// @Success      200  {array}   dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	var in dto.ListMovementsRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	in.DefaultPage()

	list, err := h.projectorUC.ListMovements(in.ProductID, repository.MovementFilter{
		Branch:       in.Branch,
		MovementType: in.MovementType,
		From:         in.From,
		To:           in.To,
		Limit:        in.Limit,
		Offset:       in.Offset,
	})
	if err != nil {
		return h.mapLedgerError(c, err)
	}

	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toMovementResponse(m))
	}
	return c.JSON(fiber.Map{
		"items": items,
		"page":  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: len(items)},
	})
}

// GetMovement godoc
// @Summary      Obtener un movimiento por movement_id
// @Tags         inventory
// @Produce      json
// @Param        id   path  string  true  "movement_id"
// @Success      200  {object}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements/{id} [get]
func (h *InventoryHandler) GetMovement(c *fiber.Ctx) error {
	mov, err := h.projectorUC.GetMovement(c.Params("id"))
	if err != nil {
		return h.mapLedgerError(c, err)
	}
	return c.JSON(toMovementResponse(mov))
}

// GetCurrentStock godoc
// @Summary      Stock proyectado de un producto en una sede
// @Tags         inventory
// @Produce      json
// @Param        product_id  query  string  true  "product_id"
// @Param        branch      query  string  true  "Sede"
// @Success      200  {object}  dto.StockResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/stock [get]
func (h *InventoryHandler) GetCurrentStock(c *fiber.Ctx) error {
	productID := c.Query("product_id")
	branch := c.Query("branch")
	proj, err := h.projectorUC.GetCurrentStock(productID, branch)
	if err != nil {
		return h.mapLedgerError(c, err)
	}
	return c.JSON(toStockResponse(proj))
}

// Rebuild godoc
// @Summary      Reconstruir la proyección de stock desde el ledger
// @Description  Repliega todos los movimientos de (producto, sede) y sobreescribe
//               la proyección. Si el replay no coincide con un movimiento
//               almacenado, aborta sin tocar la caché.
// @Tags         inventory
// @Produce      json
// @Param        product_id  query  string  true  "product_id"
// @Param        branch      query  string  true  "Sede"
// @Success      200  {object}  dto.StockResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory/stock/rebuild [post]
func (h *InventoryHandler) Rebuild(c *fiber.Ctx) error {
	productID := c.Query("product_id")
	branch := c.Query("branch")
	proj, err := h.projectorUC.Rebuild(c.Context(), productID, branch)
	if err != nil {
		return h.mapLedgerError(c, err)
	}
	return c.JSON(toStockResponse(proj))
}

// ReorderStatus godoc
// @Summary      Estado de reposición de un producto en una sede
// @Tags         inventory
// @Produce      json
// @Param        product_id  query  string  true  "product_id"
// @Param        branch      query  string  true  "Sede"
// @Success      200  {object}  dto.ReorderStatusResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/reorder-status [get]
func (h *InventoryHandler) ReorderStatus(c *fiber.Ctx) error {
	out, err := h.reorderUC.EvaluateReorderStatus(c.Query("product_id"), c.Query("branch"))
	if err != nil {
		return h.mapLedgerError(c, err)
	}
	return c.JSON(out)
}

// ReorderList godoc
// @Summary      SKUs bajo su nivel de reorden
// @Tags         inventory
// @Produce      json
// @Param        branch  query  string  false  "Sede (vacío = todas)"
// @Success      200  {array}  dto.ReorderSuggestionDTO
// @Router       /api/inventory/reorder-list [get]
func (h *InventoryHandler) ReorderList(c *fiber.Ctx) error {
	list, err := h.reorderUC.ListBelowReorderLevel(c.Query("branch"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{
		"total": len(list),
		"items": list,
	})
}

// mapLedgerError traduce la taxonomía de errores del dominio a HTTP para que
// la UI pueda distinguir "stock insuficiente" de "vuelva a intentar".
func (h *InventoryHandler) mapLedgerError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente"})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "conflicto de concurrencia, reintentar"})
	case errors.Is(err, domain.ErrDanglingReference):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "DANGLING_REFERENCE", Message: "la referencia externa no existe"})
	case errors.Is(err, domain.ErrReferenceCheckTimeout):
		return c.Status(fiber.StatusGatewayTimeout).JSON(dto.ErrorResponse{Code: "REFERENCE_CHECK_TIMEOUT", Message: "no se pudo verificar la referencia, reintentar"})
	case errors.Is(err, domain.ErrReplayMismatch):
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "REPLAY_MISMATCH", Message: "divergencia entre ledger y proyección; requiere revisión manual"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

func toMovementResponse(m *entity.StockMovement) *dto.MovementResponse {
	return &dto.MovementResponse{
		MovementID:       m.ID,
		SequenceID:       m.SequenceID,
		ProductID:        m.ProductID,
		Branch:           m.Branch,
		MovementType:     m.Type,
		Direction:        m.Direction,
		Quantity:         m.Quantity,
		SignedDelta:      m.SignedDelta,
		Reason:           m.Reason,
		StockBefore:      m.StockBefore,
		StockAfter:       m.StockAfter,
		PurchaseOrderRef: m.PurchaseOrderRef,
		CaseRef:          m.CaseRef,
		Notes:            m.Notes,
		MovementDate:     m.MovementDate,
		CreatedAt:        m.CreatedAt,
	}
}

func toStockResponse(p *entity.ProjectedStock) *dto.StockResponse {
	out := &dto.StockResponse{
		ProductID:      p.ProductID,
		Branch:         p.Branch,
		CurrentStock:   p.CurrentStock,
		LastSequenceID: p.LastSequenceID,
	}
	if !p.UpdatedAt.IsZero() {
		out.UpdatedAt = p.UpdatedAt
	}
	return out
}
