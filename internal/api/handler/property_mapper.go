package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/propertyhub/marketplace-api/internal/core/ports"
)

func toCreateInput(req createPropertyRequest) ports.CreatePropertyInput {
	return ports.CreatePropertyInput{
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		Category:    req.Category,
		Price:       req.Price,
		Size:        req.Size,
		SizeUnit:    req.SizeUnit,
		Bedrooms:    req.Bedrooms,
		Bathrooms:   req.Bathrooms,
		Address:     req.Location.Address,
		City:        req.Location.City,
		State:       req.Location.State,
		ZipCode:     req.Location.ZipCode,
		Images:      req.Images,
	}
}

func toPatch(req updatePropertyRequest) ports.PropertyPatch {
	return ports.PropertyPatch{
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		Category:    req.Category,
		Price:       req.Price,
		Size:        req.Size,
		SizeUnit:    req.SizeUnit,
		Bedrooms:    req.Bedrooms,
		Bathrooms:   req.Bathrooms,
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
		ZipCode:     req.ZipCode,
		Images:      req.Images,
		Status:      req.Status,
	}
}

func toSearchCriteria(c echo.Context) ports.SearchCriteria {
	return ports.SearchCriteria{
		Type:     c.QueryParam("type"),
		Category: c.QueryParam("category"),
		City:     c.QueryParam("city"),
		State:    c.QueryParam("state"),
		Status:   c.QueryParam("status"),
		MinPrice: c.QueryParam("min_price"),
		MaxPrice: c.QueryParam("max_price"),
		Search:   c.QueryParam("search"),
	}
}
