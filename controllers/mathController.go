package controllers

import (
	"net/http"

	"classroom-tools/combinatorics"
	"classroom-tools/models"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Factorial(c *gin.Context) {
	var req models.FactorialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	v, err := combinatorics.Factorial(*req.N)
	if err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"n": *req.N, "result": v.String()})
}

// Count computes permutations or combinations with or without repetition.
func (h *Handler) Count(c *gin.Context) {
	var req models.CountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	kind, err := combinatorics.ParseKind(req.Kind)
	if err != nil {
		badRequest(c, err)
		return
	}
	res, err := combinatorics.Count(kind, *req.N, *req.R)
	if err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, models.CountResponse{
		Kind:    string(res.Kind),
		Formula: res.Formula,
		Result:  res.Value.String(),
		Text:    res.String(),
	})
}

// GCD returns the gcd with the trace of Euclid's algorithm.
func (h *Handler) GCD(c *gin.Context) {
	var req models.GCDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	tr, err := combinatorics.GCD(*req.A, *req.B)
	if err != nil {
		badRequest(c, err)
		return
	}
	steps := tr.Steps
	if steps == nil {
		steps = []string{}
	}
	c.JSON(http.StatusOK, models.GCDResponse{GCD: tr.GCD, Steps: steps, Text: tr.String()})
}

func (h *Handler) Sets(c *gin.Context) {
	var req models.SetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	a := combinatorics.ParseSet(req.A)
	b := combinatorics.ParseSet(req.B)
	c.JSON(http.StatusOK, models.SetResponse{
		A:            a,
		B:            b,
		Union:        combinatorics.Union(a, b),
		Intersection: combinatorics.Intersection(a, b),
		Difference:   combinatorics.Difference(a, b),
	})
}
