package timetable

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/univbot/schedule-system/internal/config"
	"github.com/univbot/schedule-system/internal/logger"
)

// Fetcher получает HTML-страницу расписания
type Fetcher interface {
	Fetch(ctx context.Context) ([]byte, error)
	SourceURL() string
	Target() (semester string, group string)
}

// HTTPFetcher загружает страницу расписания с сайта университета
type HTTPFetcher struct {
	baseURL string
	group   string
	client  *http.Client
	log     logger.Logger
	now     func() time.Time
}

// NewHTTPFetcher создает загрузчик страницы расписания
func NewHTTPFetcher(conf config.TimetableConfig, log logger.Logger) *HTTPFetcher {
	return &HTTPFetcher{
		baseURL: strings.TrimRight(conf.BaseURL, "/"),
		group:   conf.Group,
		client: &http.Client{
			Timeout: 30 * time.Second,
			// Сайт расписания отдаёт некорректный сертификат
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			},
		},
		log: log,
		now: time.Now,
	}
}

// SemesterAndGroup определяет семестр и номер группы по текущей дате.
// С сентября по декабрь идёт осенний семестр, иначе весенний. В июле группы
// перенумеровываются: числовая часть кода увеличивается на 100.
func SemesterAndGroup(now time.Time, group string) (string, string) {
	semester := "vesenniy"
	if now.Month() >= time.September && now.Month() <= time.December {
		semester = "osenniy"
	}

	if now.Month() == time.July {
		var digits, letters strings.Builder
		for _, r := range group {
			switch {
			case r >= '0' && r <= '9':
				digits.WriteRune(r)
			default:
				letters.WriteRune(r)
			}
		}
		if number, err := strconv.Atoi(digits.String()); err == nil {
			group = strconv.Itoa(number+100) + letters.String()
		}
	}

	return semester, group
}

// Target возвращает семестр и группу для текущей даты
func (f *HTTPFetcher) Target() (string, string) {
	return SemesterAndGroup(f.now(), f.group)
}

// SourceURL возвращает адрес страницы расписания для текущей даты
func (f *HTTPFetcher) SourceURL() string {
	semester, group := f.Target()
	return fmt.Sprintf("%s/%s/%s.htm", f.baseURL, semester, group)
}

// Fetch загружает страницу расписания
func (f *HTTPFetcher) Fetch(ctx context.Context) ([]byte, error) {
	url := f.SourceURL()
	f.log.Infof("Загрузка расписания: %s", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRetrieval, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRetrieval, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: статус %d", ErrRetrieval, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRetrieval, err)
	}

	return data, nil
}
