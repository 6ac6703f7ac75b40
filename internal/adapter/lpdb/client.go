package lpdb

import (
	"EsportsSchedule/internal/adapter"
	"EsportsSchedule/internal/config"
	"EsportsSchedule/internal/interfaces"
	"EsportsSchedule/internal/mapping"
	"EsportsSchedule/internal/model"
	"EsportsSchedule/internal/utils/httpclient"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

func init() {
	adapter.Register(model.SourceLPDB, NewFetcher)
}

// Fetcher LPDB 结构化 API（/match 接口，只取一页）
type Fetcher struct {
	cfg        *config.LiquipediaConfig
	httpClient *http.Client
	logger     *logrus.Logger
}

func NewFetcher(cfg *config.LiquipediaConfig, logger *logrus.Logger) interfaces.ScheduleFetcher {
	return &Fetcher{
		cfg:        cfg,
		httpClient: httpclient.NewHTTPClient(cfg, logger),
		logger:     logger,
	}
}

func (f *Fetcher) GetName() string {
	return "LPDB"
}

// Conditions 俱乐部作为任一方的过滤条件
func Conditions(club string) string {
	return fmt.Sprintf("(opponent1='%s' OR opponent2='%s')", club, club)
}

// BuildURL 组装 /match 请求地址
func (f *Fetcher) BuildURL(wiki, club string) string {
	q := url.Values{}
	q.Set("wiki", wiki)
	q.Set("conditions", Conditions(club))
	q.Set("order", "date ASC")
	q.Set("limit", strconv.Itoa(f.cfg.Limit))
	return strings.TrimRight(f.cfg.LPDBBaseURL, "/") + "/match?" + q.Encode()
}

func (f *Fetcher) FetchUpcoming(ctx context.Context, game, club string) (interface{}, error) {
	if f.cfg.APIKey == "" {
		return nil, adapter.ErrCredentialRequired
	}
	wiki, err := adapter.ResolveWiki(f.cfg, game)
	if err != nil {
		return nil, err
	}

	header := http.Header{}
	header.Set("Authorization", "Bearer "+f.cfg.APIKey)
	header.Set("Accept", "application/json")

	body, err := httpclient.GetBody(ctx, f.httpClient, f.BuildURL(wiki, club), header, f.cfg.RetryCount, f.logger)
	if err != nil {
		return nil, fmt.Errorf("获取LPDB赛程失败: %w", err)
	}

	raw, err := mapping.DecodeJSON(body)
	if err != nil {
		return nil, fmt.Errorf("解析LPDB响应失败: %w", err)
	}
	f.logger.WithFields(logrus.Fields{
		"wiki":  wiki,
		"bytes": len(body),
	}).Info("LPDB响应获取成功")
	return raw, nil
}
