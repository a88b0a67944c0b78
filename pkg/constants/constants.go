package constants

// --- СТАТУСЫ ОБОРУДОВАНИЯ (Совпадает со значениями в БД) ---
const (
	StatusInStock  = "in_stock"
	StatusInUse    = "in_use"
	StatusInRepair = "in_repair"
	StatusDisposed = "disposed"
)

// EquipmentStatuses - полный список статусов жизненного цикла.
var EquipmentStatuses = []string{
	StatusInStock,
	StatusInUse,
	StatusInRepair,
	StatusDisposed,
}

func IsEquipmentStatus(code string) bool {
	for _, s := range EquipmentStatuses {
		if s == code {
			return true
		}
	}
	return false
}

// --- СТАТУСЫ РЕМОНТА ---
const (
	RepairPending    = "pending"
	RepairInProgress = "in_progress"
	RepairCompleted  = "completed"
	RepairFailed     = "failed"
)

// Закрытые статусы ремонта
var closedRepairStatuses = []string{
	RepairCompleted,
	RepairFailed,
}

func IsRepairClosed(code string) bool {
	for _, s := range closedRepairStatuses {
		if s == code {
			return true
		}
	}
	return false
}

// --- ПРИЧИНЫ УТИЛИЗАЦИИ, проставляемые системой ---
const (
	DisposalReasonDefault      = "Утилизация"
	DisposalReasonFailedRepair = "Неудачный ремонт"
)
