package calendar

const (
	defaultPageSize = 50
	maxPageSize     = 500
)

// Page описывает одну страницу элементов.
type Page[T any] struct {
	Items    []T   `json:"items"`     // элементы на текущей странице
	Page     int   `json:"page"`      // номер страницы (с 1)
	PageSize int   `json:"page_size"` // количество элементов на странице
	HasNext  bool  `json:"has_next"`
	HasPrev  bool  `json:"has_prev"`
	Total    int64 `json:"total"` // общее количество элементов
}

// PageBounds нормализует номер и размер страницы и возвращает limit/offset для запроса.
func PageBounds(page, pageSize int) (limit, offset, normPage, normSize int) {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	if page <= 0 {
		page = 1
	}
	return pageSize, (page - 1) * pageSize, page, pageSize
}

// NewPage собирает страницу из результата запроса с LIMIT/OFFSET.
func NewPage[T any](items []T, total int64, page, pageSize int) Page[T] {
	_, offset, page, pageSize := PageBounds(page, pageSize)
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:    items,
		Page:     page,
		PageSize: pageSize,
		HasPrev:  page > 1,
		HasNext:  int64(offset+len(items)) < total,
		Total:    total,
	}
}

// Paginate возвращает срез items для указанной страницы и метаданные.
// page нумеруется с 1. При некорректных значениях используются дефолты.
func Paginate[T any](items []T, page, pageSize int) Page[T] {
	_, start, page, pageSize := PageBounds(page, pageSize)

	total := len(items)
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	return Page[T]{
		Items:    items[start:end],
		Page:     page,
		PageSize: pageSize,
		HasNext:  end < total,
		HasPrev:  page > 1,
		Total:    int64(total),
	}
}
