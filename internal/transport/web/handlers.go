package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/avstrong/pricelist/internal/pricing"
	"github.com/gin-gonic/gin"
)

func productID(c *gin.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		return 0, ErrBadProductID
	}

	return id, nil
}

// writeError maps use-case errors to statuses. Anything unknown is logged and
// hidden behind a 500.
func (s *Server) writeError(c *gin.Context, err error, action string) {
	if inputErr := pricing.IsInputError(err); inputErr != nil {
		//nolint:exhaustruct
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid input", Fields: inputErr.Fields()})

		return
	}

	if activationErr := pricing.IsActivationError(err); activationErr != nil {
		//nolint:exhaustruct
		c.JSON(http.StatusConflict, errorResponse{Error: "pricelist has blocking issues", Issues: activationErr.Issues()})

		return
	}

	switch {
	case errors.Is(err, ErrBadProductID), errors.Is(err, ErrBadArrivalDay), errors.Is(err, pricing.ErrUnknownRuleKind):
		c.JSON(http.StatusBadRequest, errorBody(err.Error()))
	case errors.Is(err, pricing.ErrPricelistNotFound):
		c.JSON(http.StatusNotFound, errorBody(pricing.ErrPricelistNotFound.Error()))
	case errors.Is(err, pricing.ErrForbidden):
		c.JSON(http.StatusForbidden, errorBody(pricing.ErrForbidden.Error()))
	case errors.Is(err, pricing.ErrAssistantUnavailable):
		c.JSON(http.StatusServiceUnavailable, errorBody(pricing.ErrAssistantUnavailable.Error()))
	default:
		s.l.LogErrorf("Could not %s: %v", action, err.Error())
		c.JSON(http.StatusInternalServerError, errorBody(http.StatusText(http.StatusInternalServerError)))
	}
}

func (s *Server) badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, errorBody(fmt.Sprintf("invalid request payload: %v", err)))
}

func (s *Server) createPricelistHandler(c *gin.Context) {
	var input pricing.ProductInput

	if err := c.ShouldBindJSON(&input); err != nil {
		s.badRequest(c, err)

		return
	}

	pricelist, err := s.pManager.CreatePricelist(c.Request.Context(), &input)
	if err != nil {
		s.writeError(c, err, "create a pricelist")

		return
	}

	c.JSON(http.StatusCreated, newPricelistView(pricelist))
}

func (s *Server) listPricelistsHandler(c *gin.Context) {
	pricelists, err := s.pManager.ListPricelists(c.Request.Context())
	if err != nil {
		s.writeError(c, err, "list pricelists")

		return
	}

	views := make([]pricelistView, 0, len(pricelists))
	for _, p := range pricelists {
		views = append(views, newPricelistView(p))
	}

	c.JSON(http.StatusOK, views)
}

func (s *Server) getPricelistHandler(c *gin.Context) {
	id, err := productID(c)
	if err != nil {
		s.writeError(c, err, "get a pricelist")

		return
	}

	pricelist, err := s.pManager.GetPricelist(c.Request.Context(), id)
	if err != nil {
		s.writeError(c, err, "get a pricelist")

		return
	}

	c.JSON(http.StatusOK, newPricelistViewWithIssues(pricelist))
}

func (s *Server) issuesHandler(c *gin.Context) {
	id, err := productID(c)
	if err != nil {
		s.writeError(c, err, "validate a pricelist")

		return
	}

	issues, err := s.pManager.Validate(c.Request.Context(), id)
	if err != nil {
		s.writeError(c, err, "validate a pricelist")

		return
	}

	c.JSON(http.StatusOK, gin.H{"issues": issues})
}

func (s *Server) addPeriodHandler(c *gin.Context) {
	id, err := productID(c)
	if err != nil {
		s.writeError(c, err, "add a period")

		return
	}

	pricelist, period, err := s.pManager.AddPeriod(c.Request.Context(), id)
	if err != nil {
		s.writeError(c, err, "add a period")

		return
	}

	c.JSON(http.StatusCreated, gin.H{"pricelist": newPricelistView(pricelist), "period": period})
}

func (s *Server) updatePeriodHandler(c *gin.Context) {
	id, err := productID(c)
	if err != nil {
		s.writeError(c, err, "update a period")

		return
	}

	var update fieldUpdate

	if err := c.ShouldBindJSON(&update); err != nil {
		s.badRequest(c, err)

		return
	}

	pricelist, err := s.pManager.UpdatePeriod(c.Request.Context(), id, c.Param("periodID"), update.Field, update.Value)
	if err != nil {
		s.writeError(c, err, "update a period")

		return
	}

	c.JSON(http.StatusOK, newPricelistView(pricelist))
}

func (s *Server) removePeriodHandler(c *gin.Context) {
	id, err := productID(c)
	if err != nil {
		s.writeError(c, err, "remove a period")

		return
	}

	pricelist, err := s.pManager.RemovePeriod(c.Request.Context(), id, c.Param("periodID"))
	if err != nil {
		s.writeError(c, err, "remove a period")

		return
	}

	c.JSON(http.StatusOK, newPricelistView(pricelist))
}

func (s *Server) toggleArrivalDayHandler(c *gin.Context) {
	id, err := productID(c)
	if err != nil {
		s.writeError(c, err, "toggle an arrival day")

		return
	}

	day, err := strconv.Atoi(c.Param("day"))
	if err != nil {
		s.writeError(c, ErrBadArrivalDay, "toggle an arrival day")

		return
	}

	pricelist, err := s.pManager.ToggleArrivalDay(c.Request.Context(), id, c.Param("periodID"), day)
	if err != nil {
		s.writeError(c, err, "toggle an arrival day")

		return
	}

	c.JSON(http.StatusOK, newPricelistView(pricelist))
}

func (s *Server) addRuleHandler(c *gin.Context) {
	id, err := productID(c)
	if err != nil {
		s.writeError(c, err, "add a rule")

		return
	}

	var input ruleInput

	if err := c.ShouldBindJSON(&input); err != nil {
		s.badRequest(c, err)

		return
	}

	kind, err := pricing.ParseRuleKind(input.Kind)
	if err != nil {
		s.writeError(c, err, "add a rule")

		return
	}

	pricelist, rule, err := s.pManager.AddRule(c.Request.Context(), id, kind)
	if err != nil {
		s.writeError(c, err, "add a rule")

		return
	}

	c.JSON(http.StatusCreated, gin.H{"pricelist": newPricelistView(pricelist), "rule": rule})
}

func (s *Server) updateRuleHandler(c *gin.Context) {
	id, err := productID(c)
	if err != nil {
		s.writeError(c, err, "update a rule")

		return
	}

	var update fieldUpdate

	if err := c.ShouldBindJSON(&update); err != nil {
		s.badRequest(c, err)

		return
	}

	pricelist, err := s.pManager.UpdateRule(c.Request.Context(), id, c.Param("ruleID"), update.Field, update.Value)
	if err != nil {
		s.writeError(c, err, "update a rule")

		return
	}

	c.JSON(http.StatusOK, newPricelistView(pricelist))
}

func (s *Server) removeRuleHandler(c *gin.Context) {
	id, err := productID(c)
	if err != nil {
		s.writeError(c, err, "remove a rule")

		return
	}

	pricelist, err := s.pManager.RemoveRule(c.Request.Context(), id, c.Param("ruleID"))
	if err != nil {
		s.writeError(c, err, "remove a rule")

		return
	}

	c.JSON(http.StatusOK, newPricelistView(pricelist))
}

func (s *Server) activateHandler(c *gin.Context) {
	id, err := productID(c)
	if err != nil {
		s.writeError(c, err, "activate a pricelist")

		return
	}

	pricelist, err := s.pManager.Activate(c.Request.Context(), id)
	if err != nil {
		s.writeError(c, err, "activate a pricelist")

		return
	}

	c.JSON(http.StatusOK, newPricelistView(pricelist))
}

func (s *Server) exportHandler(c *gin.Context) {
	id, err := productID(c)
	if err != nil {
		s.writeError(c, err, "export a pricelist")

		return
	}

	doc, filename, err := s.pManager.Export(c.Request.Context(), id)
	if err != nil {
		s.writeError(c, err, "export a pricelist")

		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.IndentedJSON(http.StatusOK, doc)
}

func (s *Server) quoteHandler(c *gin.Context) {
	id, err := productID(c)
	if err != nil {
		s.writeError(c, err, "quote a stay")

		return
	}

	var req pricing.QuoteRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)

		return
	}

	quote, err := s.pManager.Quote(c.Request.Context(), id, &req)
	if err != nil {
		s.writeError(c, err, "quote a stay")

		return
	}

	c.JSON(http.StatusOK, quote)
}

func (s *Server) suggestHandler(c *gin.Context) {
	id, err := productID(c)
	if err != nil {
		s.writeError(c, err, "ask for a suggestion")

		return
	}

	var input suggestInput

	if err := c.ShouldBindJSON(&input); err != nil {
		s.badRequest(c, err)

		return
	}

	answer, err := s.pManager.Suggest(c.Request.Context(), id, input.Instruction)
	if err != nil {
		s.writeError(c, err, "ask for a suggestion")

		return
	}

	c.JSON(http.StatusOK, gin.H{"answer": answer})
}
