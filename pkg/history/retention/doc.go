// Package retention prunes old validation history.
//
// A Pruner deletes records older than the configured retention period
// and can additionally cap the total record count, deleting oldest
// first. Pruning runs on a cron schedule via the embedded Scheduler:
//
//	pruner := retention.NewPruner(store, &retention.Config{
//		RetentionDays: 90,
//		PruneSchedule: "0 3 * * *",
//	})
//	if err := pruner.Start(ctx); err != nil {
//		return err
//	}
//	defer pruner.Stop()
package retention
