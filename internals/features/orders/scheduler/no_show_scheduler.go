// file: internals/features/orders/scheduler/no_show_scheduler.go
package scheduler

import (
	"context"
	"errors"
	"log"
	"os"
	"strconv"
	"time"

	"hango_backend/internals/features/orders/service"
)

// StartNoShowSweepScheduler dispara a varredura de faltas uma vez por
// hora; o próprio serviço rejeita execuções antes do horário limite e a
// transição é idempotente, então rodadas repetidas no mesmo dia só
// pegam pedidos ainda pendentes.
func StartNoShowSweepScheduler(noShow *service.NoShowService) {
	go func() {
		intervalMinutes := 60
		if val := os.Getenv("NO_SHOW_SWEEP_INTERVAL_MINUTES"); val != "" {
			if parsed, err := strconv.Atoi(val); err == nil && parsed > 0 {
				intervalMinutes = parsed
			}
		}

		for {
			log.Println("[SWEEP] Rodando varredura de faltas...")

			report, err := noShow.Sweep(context.Background(), false, false)
			switch {
			case errors.Is(err, service.ErrSweepBeforeCutoff):
				log.Println("[SWEEP] Antes do horário limite, nada a fazer")
			case err != nil:
				log.Printf("[SWEEP ERROR] %v", err)
			case report.Marked == 0:
				log.Println("[SWEEP] Nenhum pedido pendente vencido")
			default:
				log.Printf("[SWEEP] %d faltas marcadas, %d bloqueios automáticos (%d pulados)",
					report.Marked, report.Blocked, report.Skipped)
			}

			time.Sleep(time.Duration(intervalMinutes) * time.Minute)
		}
	}()
}
