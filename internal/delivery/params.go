package delivery

import (
	"fmt"
	"strconv"

	"catalog_service/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// pageRequest reads page, size and the repeatable sort parameter. Unparsable page and size
// values fall back to their defaults; a malformed sort is an error.
func pageRequest(c *gin.Context, log *logrus.Logger) (domain.PageRequest, error) {
	pageStr := c.DefaultQuery("page", "0")
	sizeStr := c.DefaultQuery("size", strconv.Itoa(defaultPageSize))

	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 0 {
		log.Warnf("Invalid page parameter '%s', using default 0", pageStr)
		page = 0
	}
	size, err := strconv.Atoi(sizeStr)
	if err != nil || size <= 0 {
		log.Warnf("Invalid size parameter '%s', using default %d", sizeStr, defaultPageSize)
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	var sort []domain.SortOrder
	for _, raw := range c.QueryArray("sort") {
		order, err := domain.ParseSortOrder(raw)
		if err != nil {
			return domain.PageRequest{}, err
		}
		sort = append(sort, order)
	}
	return domain.PageOf(page, size, sort...), nil
}

func pathID(c *gin.Context) (int64, error) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid id %q", domain.ErrInvalidArgument, idStr)
	}
	return id, nil
}
