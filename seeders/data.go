package seeders

type warehouseSeed struct {
	Name        string
	Address     string
	Description string
	IsMain      bool
}

var warehousesData = []warehouseSeed{
	{Name: "Центральный склад", Address: "Главный корпус, подвал", Description: "Основное место хранения техники", IsMain: true},
	{Name: "Склад корпуса Б", Address: "Корпус Б, каб. 001", Description: "", IsMain: false},
}

var equipmentTypesData = []string{
	"Компьютер",
	"Монитор",
	"Принтер",
	"Проектор",
	"Мебель",
	"Сетевое оборудование",
}

type specificationSeed struct {
	TypeName string
	Name     string
	Specs    map[string]interface{}
}

var specificationsData = []specificationSeed{
	{
		TypeName: "Компьютер",
		Name:     "Офисный системный блок",
		Specs: map[string]interface{}{
			"protsessor": map[string]interface{}{"display": "Процессор", "value": "Intel Core i3"},
			"ozu":        map[string]interface{}{"display": "ОЗУ", "value": "8 ГБ"},
		},
	},
	{
		TypeName: "Монитор",
		Name:     "Монитор 24\"",
		Specs: map[string]interface{}{
			"diagonal": map[string]interface{}{"display": "Диагональ", "value": "24"},
		},
	},
}

type roomSeed struct {
	Number    string
	Name      string
	IsSpecial bool
}

var roomsData = []roomSeed{
	{Number: "101", Name: "Кабинет информатики", IsSpecial: false},
	{Number: "102", Name: "Лекционная аудитория", IsSpecial: false},
	{Number: "201", Name: "Деканат", IsSpecial: false},
	{Number: "202", Name: "Серверная", IsSpecial: true},
	{Number: "305", Name: "Лаборатория физики", IsSpecial: true},
}
