package cargo

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
	adapter.Register(model.SourceCargo, NewFetcher)
}

// Fields cargoquery 返回的列（带 m. 前缀别名，归一化时按 m.xxx 读取）
var Fields = []string{
	"m.pagename=m.pagename",
	"m.utcStartTime=m.utcStartTime",
	"m.opponent1=m.opponent1",
	"m.opponent2=m.opponent2",
	"m.tournament=m.tournament",
	"m.bestof=m.bestof",
	"m.stream=m.stream",
}

// Fetcher MediaWiki cargoquery（无需 API key）
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
	return "Cargo"
}

// BuildURL 组装 api.php?action=cargoquery 请求地址
func (f *Fetcher) BuildURL(wiki, club string) string {
	quoted := strings.ReplaceAll(club, "'", `\'`)
	q := url.Values{}
	q.Set("action", "cargoquery")
	q.Set("format", "json")
	q.Set("tables", "Matches=m")
	q.Set("fields", strings.Join(Fields, ","))
	q.Set("where", fmt.Sprintf("m.opponent1='%s' OR m.opponent2='%s'", quoted, quoted))
	q.Set("order_by", "m.utcStartTime ASC")
	q.Set("limit", strconv.Itoa(f.cfg.Limit))
	return fmt.Sprintf("%s/%s/api.php?%s", strings.TrimRight(f.cfg.WikiBaseURL, "/"), wiki, q.Encode())
}

func (f *Fetcher) FetchUpcoming(ctx context.Context, game, club string) (interface{}, error) {
	wiki, err := adapter.ResolveWiki(f.cfg, game)
	if err != nil {
		return nil, err
	}

	header := http.Header{}
	header.Set("Accept", "application/json")

	body, err := httpclient.GetBody(ctx, f.httpClient, f.BuildURL(wiki, club), header, f.cfg.RetryCount, f.logger)
	if err != nil {
		return nil, fmt.Errorf("获取cargoquery赛程失败: %w", err)
	}

	raw, err := mapping.DecodeJSON(body)
	if err != nil {
		return nil, fmt.Errorf("解析cargoquery响应失败: %w", err)
	}

	// MediaWiki 出错时仍返回 200，错误放在 error 字段里
	if apiErr := mapping.SafeGet(raw, "error", "info"); mapping.Present(apiErr) {
		return nil, fmt.Errorf("cargoquery返回错误: %v", apiErr)
	}
	f.logger.WithFields(logrus.Fields{
		"wiki":  wiki,
		"bytes": len(body),
	}).Info("cargoquery响应获取成功")
	return raw, nil
}
