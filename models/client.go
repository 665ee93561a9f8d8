package models

type Client struct {
	Code    string `json:"code" binding:"required"`
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
}

type ClientUpdate struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
}
