package services

import (
	"bytes"
	"encoding/json"
	"io"
	"net"
	"net/http"

	"ponewine/config"
	"ponewine/models"

	"github.com/sirupsen/logrus"
)

const clientReportPath = "/api/pone-wine/client-report"

// ReportClient posts the settled batch report to the house agent's
// client site. Strictly best effort: it runs after the settlement has
// committed and its failures are logged, never propagated.
type ReportClient struct {
	http           *http.Client
	transactionKey string
}

func NewReportClient(cfg config.CallbackConfig) *ReportClient {
	return &ReportClient{
		http: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: cfg.ConnectTimeout,
				}).DialContext,
			},
		},
		transactionKey: cfg.TransactionKey,
	}
}

type clientReport struct {
	RoomID    int              `json:"roomId"`
	MatchID   string           `json:"matchId"`
	WinNumber int              `json:"winNumber"`
	Players   []CallbackPlayer `json:"players"`
}

// Send posts the report for one settled batch. Call only after commit
// and only when the agent carries a callback URL.
func (r *ReportClient) Send(agent *models.User, req *models.PoneWineSettleRequest, players []CallbackPlayer) {
	callbackURL := agent.ShanCallbackURL + clientReportPath

	payload := clientReport{
		RoomID:    *req.RoomID,
		MatchID:   req.MatchID,
		WinNumber: *req.WinNumber,
		Players:   players,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		logrus.WithError(err).Error("PoneWineTransaction: Failed to encode callback payload")
		return
	}

	httpReq, err := http.NewRequest(http.MethodPost, callbackURL, bytes.NewBuffer(body))
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"callback_url": callbackURL,
			"match_id":     req.MatchID,
		}).WithError(err).Error("PoneWineTransaction: Failed to build callback request")
		return
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Transaction-Key", r.transactionKey)

	resp, err := r.http.Do(httpReq)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"callback_url": callbackURL,
			"match_id":     req.MatchID,
		}).WithError(err).Error("PoneWineTransaction: Callback failed")
		return
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		logrus.WithFields(logrus.Fields{
			"callback_url": callbackURL,
			"status_code":  resp.StatusCode,
			"match_id":     req.MatchID,
		}).Info("PoneWineTransaction: Callback successful")
		return
	}

	logrus.WithFields(logrus.Fields{
		"callback_url":  callbackURL,
		"status_code":   resp.StatusCode,
		"response_body": string(respBody),
		"match_id":      req.MatchID,
	}).Error("PoneWineTransaction: Callback failed with non-2xx status")
}
