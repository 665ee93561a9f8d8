package controllers

import (
	"net/http"

	"classroom-tools/algebra"
	"classroom-tools/models"

	"github.com/gin-gonic/gin"
	"gonum.org/v1/gonum/mat"
)

const displayPrecision = 4

func toMatrix(in models.MatrixInput) (*mat.Dense, error) {
	if len(in.Rows) > 0 {
		return algebra.FromRows(in.Rows)
	}
	return algebra.ParseMatrix(in.Text)
}

func matrixResponse(m mat.Matrix) models.MatrixResponse {
	return models.MatrixResponse{Rows: algebra.ToRows(m), Formatted: algebra.Format(m, displayPrecision)}
}

// Inverse returns the inverse of a square, non-singular matrix.
func (h *Handler) Inverse(c *gin.Context) {
	var req models.MatrixRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	a, err := toMatrix(req.Matrix)
	if err != nil {
		badRequest(c, err)
		return
	}
	inv, err := algebra.Inverse(a)
	if err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, matrixResponse(inv))
}

func (h *Handler) Determinant(c *gin.Context) {
	var req models.MatrixRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	a, err := toMatrix(req.Matrix)
	if err != nil {
		badRequest(c, err)
		return
	}
	det, err := algebra.Determinant(a)
	if err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"determinant": det, "singular": algebra.IsZero(det)})
}

func (h *Handler) Multiply(c *gin.Context) {
	var req models.MultiplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	a, err := toMatrix(req.A)
	if err != nil {
		badRequest(c, err)
		return
	}
	b, err := toMatrix(req.B)
	if err != nil {
		badRequest(c, err)
		return
	}
	p, err := algebra.Multiply(a, b)
	if err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, matrixResponse(p))
}

// Solve classifies and, when possible, solves A*x = b.
func (h *Handler) Solve(c *gin.Context) {
	var req models.SolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	a, err := toMatrix(req.A)
	if err != nil {
		badRequest(c, err)
		return
	}
	b := req.B
	if len(b) == 0 {
		if b, err = algebra.ParseVector(req.BText); err != nil {
			badRequest(c, err)
			return
		}
	}
	method, err := algebra.ParseMethod(req.Method)
	if err != nil {
		badRequest(c, err)
		return
	}
	sol, err := algebra.Solve(a, b, method)
	if err != nil {
		badRequest(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SolveResponse{
		Status:        string(sol.Status),
		Message:       sol.Status.Describe(),
		Method:        string(sol.Method),
		Determinant:   sol.Determinant,
		RankA:         sol.RankA,
		RankAugmented: sol.RankAugmented,
		X:             sol.X,
		Formatted:     algebra.FormatVector(sol.X, displayPrecision),
	})
}
