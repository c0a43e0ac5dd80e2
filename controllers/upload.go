package controllers

import (
	"io"

	"github.com/gin-gonic/gin"
	"github.com/masum-diu/nishaan/admin"
)

// FormImage opens the optional "image" file of a multipart request. A nil
// upload means no file was sent.
func FormImage(c *gin.Context) (*admin.Upload, io.Closer, error) {
	fh, err := c.FormFile("image")
	if err != nil {
		return nil, nil, nil
	}
	file, err := fh.Open()
	if err != nil {
		return nil, nil, err
	}
	return &admin.Upload{Filename: fh.Filename, Body: file}, file, nil
}
