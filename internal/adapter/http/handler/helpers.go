package handler

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Abdulkalam-AIML/feedback-ai/internal/dataset"
	"github.com/Abdulkalam-AIML/feedback-ai/internal/usecase"
)

// PaginationParams holds the raw page request. Bounds are applied by
// the feedback usecase.
type PaginationParams struct {
	Limit  int
	Offset int
}

// UploadField is the multipart field carrying dataset files
const UploadField = "file"

// ParsePagination reads limit and offset from the query. Missing or
// malformed values come back as zero.
func ParsePagination(c *gin.Context) *PaginationParams {
	return &PaginationParams{
		Limit:  queryInt(c, "limit"),
		Offset: queryInt(c, "offset"),
	}
}

func queryInt(c *gin.Context, key string) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return n
}

// ReadUploadedTable parses the uploaded dataset file. The file name is
// checked before any content is read.
func ReadUploadedTable(c *gin.Context) (*dataset.Table, error) {
	header, err := c.FormFile(UploadField)
	if err != nil {
		if tooLarge := bodyTooLarge(err); tooLarge != nil {
			return nil, tooLarge
		}
		return nil, fmt.Errorf("%w: missing %q file upload", usecase.ErrInvalidRequest, UploadField)
	}

	if err := dataset.CheckFormat(header.Filename); err != nil {
		return nil, err
	}

	f, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer f.Close()

	return dataset.ReadCSV(f)
}
