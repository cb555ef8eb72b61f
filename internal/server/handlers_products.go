package server

import (
	"net/http"

	"github.com/bobmcallan/arvest/internal/common"
	"github.com/bobmcallan/arvest/internal/models"
)

// handleProductsRoot handles GET /api/products and POST /api/products.
func (s *Server) handleProductsRoot(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleProductList(w, r)
	case http.MethodPost:
		s.handleProductCreate(w, r)
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

func (s *Server) handleProductList(w http.ResponseWriter, r *http.Request) {
	// Admins may include deactivated products with ?include_inactive=true.
	activeOnly := true
	if QueryBool(r, "include_inactive", false) && common.IsAdmin(r.Context()) {
		activeOnly = false
	}

	products, err := s.app.Products.ListProducts(r.Context(), activeOnly)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list products")
		WriteError(w, http.StatusInternalServerError, "failed to list products")
		return
	}
	if products == nil {
		products = []*models.Product{}
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"products": products,
		"count":    len(products),
	})
}

func (s *Server) handleProductCreate(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	var product models.Product
	if !DecodeJSON(w, r, &product) {
		return
	}

	if err := s.app.Products.CreateProduct(r.Context(), &product); err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	WriteJSON(w, http.StatusCreated, &product)
}

// handleProductByID handles GET/PUT/DELETE /api/products/{id}.
func (s *Server) handleProductByID(w http.ResponseWriter, r *http.Request, id string) {
	switch r.Method {
	case http.MethodGet:
		product, err := s.app.Products.GetProduct(r.Context(), id)
		if err != nil {
			WriteError(w, http.StatusNotFound, "product not found")
			return
		}
		WriteJSON(w, http.StatusOK, product)

	case http.MethodPut:
		if _, ok := requireAdmin(w, r); !ok {
			return
		}
		var product models.Product
		if !DecodeJSON(w, r, &product) {
			return
		}
		product.ID = id
		if err := s.app.Products.UpdateProduct(r.Context(), &product); err != nil {
			if isNotFound(err) {
				WriteError(w, http.StatusNotFound, "product not found")
				return
			}
			WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		WriteJSON(w, http.StatusOK, &product)

	case http.MethodDelete:
		if _, ok := requireAdmin(w, r); !ok {
			return
		}
		if err := s.app.Products.DeactivateProduct(r.Context(), id); err != nil {
			if isNotFound(err) {
				WriteError(w, http.StatusNotFound, "product not found")
				return
			}
			s.logger.Error().Err(err).Str("product_id", id).Msg("Failed to deactivate product")
			WriteError(w, http.StatusInternalServerError, "failed to deactivate product")
			return
		}
		WriteJSON(w, http.StatusOK, map[string]string{"status": "deactivated", "id": id})

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPut, http.MethodDelete)
	}
}

// handleProductDescription handles POST /api/products/{id}/description.
// Regenerates marketing copy for the product; falls back to a template
// when the text service is unavailable.
func (s *Server) handleProductDescription(w http.ResponseWriter, r *http.Request, id string) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	ctx := r.Context()
	product, err := s.app.Products.GetProduct(ctx, id)
	if err != nil {
		WriteError(w, http.StatusNotFound, "product not found")
		return
	}

	product.Description = s.app.Products.GenerateDescription(ctx, product)
	if err := s.app.Products.UpdateProduct(ctx, product); err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Msg("Failed to save regenerated description")
		WriteError(w, http.StatusInternalServerError, "failed to save description")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"id":          product.ID,
		"description": product.Description,
	})
}
