package ponewine

import (
	"ponewine/database"
	"ponewine/helpers"
	"ponewine/services"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// PlaceBet handles the provider's round settlement submission. Each
// batch settles in its own transaction; the client-site report goes
// out only after that batch has committed.
func PlaceBet(reporter *services.ReportClient) fiber.Handler {
	return func(c *fiber.Ctx) error {
		logrus.WithFields(logrus.Fields{
			"path": c.Path(),
			"ip":   c.IP(),
		}).Info("PoneWineTransaction: Request received")

		batches, err := helpers.ParseSettlePayload(c.Body())
		if err != nil {
			logrus.WithError(err).Error("PoneWineTransaction: Malformed payload")
			return helpers.JSONFail(c, "Transaction failed", err)
		}

		var results []services.PlayerResult
		for i := range batches {
			batch := &batches[i]

			batchResult, err := services.SettleBatch(database.DB, batch)
			if err != nil {
				logrus.WithFields(logrus.Fields{
					"match_id": batch.MatchID,
				}).WithError(err).Error("PoneWineTransaction: Transaction failed")
				return helpers.JSONFail(c, "Transaction failed", err)
			}

			results = append(results, batchResult.Results...)

			if batchResult.Agent != nil && batchResult.Agent.ShanCallbackURL != "" {
				reporter.Send(batchResult.Agent, batch, batchResult.CallbackPlayers)
			} else {
				logrus.WithFields(logrus.Fields{
					"has_agent":        batchResult.Agent != nil,
					"has_callback_url": batchResult.Agent != nil && batchResult.Agent.ShanCallbackURL != "",
				}).Warn("PoneWineTransaction: Skipping callback - missing agent or URL")
			}
		}

		return helpers.JSONSuccess(c, "Transaction Successful", results)
	}
}
