package models

// MatrixInput accepts either numeric rows or the text form with one row
// per line and space separated values.
type MatrixInput struct {
	Rows [][]float64 `json:"rows"`
	Text string      `json:"text"`
}

type MatrixRequest struct {
	Matrix MatrixInput `json:"matrix"`
}

type MultiplyRequest struct {
	A MatrixInput `json:"a"`
	B MatrixInput `json:"b"`
}

type SolveRequest struct {
	A      MatrixInput `json:"a"`
	B      []float64   `json:"b"`
	BText  string      `json:"b_text"`
	Method string      `json:"method"`
}

type MatrixResponse struct {
	Rows      [][]float64 `json:"rows"`
	Formatted string      `json:"formatted"`
}

type SolveResponse struct {
	Status        string    `json:"status"`
	Message       string    `json:"message"`
	Method        string    `json:"method"`
	Determinant   float64   `json:"determinant"`
	RankA         int       `json:"rank_a"`
	RankAugmented int       `json:"rank_augmented"`
	X             []float64 `json:"x,omitempty"`
	Formatted     string    `json:"formatted,omitempty"`
}

type FactorialRequest struct {
	N *int64 `json:"n" binding:"required"`
}

type CountRequest struct {
	Kind string `json:"kind" binding:"required"`
	N    *int64 `json:"n" binding:"required"`
	R    *int64 `json:"r" binding:"required"`
}

type CountResponse struct {
	Kind    string `json:"kind"`
	Formula string `json:"formula"`
	Result  string `json:"result"`
	Text    string `json:"text"`
}

type GCDRequest struct {
	A *int64 `json:"a" binding:"required"`
	B *int64 `json:"b" binding:"required"`
}

type GCDResponse struct {
	GCD   int64    `json:"gcd"`
	Steps []string `json:"steps"`
	Text  string   `json:"text"`
}

type SetRequest struct {
	A string `json:"a"`
	B string `json:"b"`
}

type SetResponse struct {
	A            []string `json:"a"`
	B            []string `json:"b"`
	Union        []string `json:"union"`
	Intersection []string `json:"intersection"`
	Difference   []string `json:"difference"`
}
