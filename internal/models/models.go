package models

// Table names for the normalized passenger schema.
const (
	PassengerClassTable = "pclass"
	PortTable           = "port"
	PassengerTable      = "passenger"
)

// PassengerColumns is the canonical column order of the passenger fact table.
// Bulk inserts and the columnar Dataset both rely on this order.
var PassengerColumns = []string{
	"passenger_id",
	"name",
	"sex",
	"age",
	"survived",
	"pclass_id",
	"sibsp",
	"parch",
	"ticket",
	"fare",
	"port_id",
}

// Encoded values of the sex column.
const (
	SexMale   = 0
	SexFemale = 1
)

// PassengerRecord is one row of the passenger fact table.
// @Description PassengerRecord is one cleaned passenger row. Nullable columns are omitted as null.
type PassengerRecord struct {
	PassengerID     int      `json:"passenger_id" gorm:"column:passenger_id;primaryKey;autoIncrement:false"`
	Name            string   `json:"name" gorm:"column:name"`
	Sex             *int     `json:"sex" gorm:"column:sex"`
	Age             *float64 `json:"age" gorm:"column:age"`
	Survived        bool     `json:"survived" gorm:"column:survived"`
	ClassID         int      `json:"pclass_id" gorm:"column:pclass_id"`
	SiblingsSpouses int      `json:"sibsp" gorm:"column:sibsp"`
	ParentsChildren int      `json:"parch" gorm:"column:parch"`
	Ticket          string   `json:"ticket" gorm:"column:ticket"`
	Fare            *float64 `json:"fare" gorm:"column:fare"`
	EmbarkPort      *string  `json:"port_id" gorm:"column:port_id"`
}

// TableName binds PassengerRecord to the passenger table.
func (PassengerRecord) TableName() string { return PassengerTable }

// PassengerClass is a row of the class dimension.
type PassengerClass struct {
	ClassID int    `json:"pclass_id" gorm:"column:pclass_id;primaryKey;autoIncrement:false"`
	Label   string `json:"class" gorm:"column:class"`
}

func (PassengerClass) TableName() string { return PassengerClassTable }

// Port is a row of the embarkation port dimension.
type Port struct {
	PortID string `json:"port_id" gorm:"column:port_id;primaryKey"`
	Name   string `json:"name" gorm:"column:name"`
}

func (Port) TableName() string { return PortTable }

// PassengerClasses is the fixed content of the class dimension.
var PassengerClasses = []PassengerClass{
	{ClassID: 1, Label: "upper"},
	{ClassID: 2, Label: "middle"},
	{ClassID: 3, Label: "lower"},
}

// Ports is the fixed content of the port dimension.
var Ports = []Port{
	{PortID: "C", Name: "Cherbourg"},
	{PortID: "Q", Name: "Queenstown"},
	{PortID: "S", Name: "Southampton"},
}

// IsKnownClass reports whether id references a row of the class dimension.
func IsKnownClass(id int) bool {
	for _, c := range PassengerClasses {
		if c.ClassID == id {
			return true
		}
	}
	return false
}

// IsKnownPort reports whether code references a row of the port dimension.
func IsKnownPort(code string) bool {
	for _, p := range Ports {
		if p.PortID == code {
			return true
		}
	}
	return false
}

// Dataset is the full passenger table as a mapping from column name to
// values in row order.
type Dataset map[string][]interface{}

// NewDataset builds the columnar view of records. Absent values become nil.
func NewDataset(records []PassengerRecord) Dataset {
	ds := make(Dataset, len(PassengerColumns))
	for _, col := range PassengerColumns {
		ds[col] = make([]interface{}, 0, len(records))
	}
	for _, r := range records {
		ds["passenger_id"] = append(ds["passenger_id"], r.PassengerID)
		ds["name"] = append(ds["name"], r.Name)
		ds["sex"] = append(ds["sex"], intOrNil(r.Sex))
		ds["age"] = append(ds["age"], floatOrNil(r.Age))
		ds["survived"] = append(ds["survived"], r.Survived)
		ds["pclass_id"] = append(ds["pclass_id"], r.ClassID)
		ds["sibsp"] = append(ds["sibsp"], r.SiblingsSpouses)
		ds["parch"] = append(ds["parch"], r.ParentsChildren)
		ds["ticket"] = append(ds["ticket"], r.Ticket)
		ds["fare"] = append(ds["fare"], floatOrNil(r.Fare))
		ds["port_id"] = append(ds["port_id"], stringOrNil(r.EmbarkPort))
	}
	return ds
}

// Len returns the number of rows in the dataset.
func (d Dataset) Len() int {
	return len(d["passenger_id"])
}

func intOrNil(v *int) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func floatOrNil(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func stringOrNil(v *string) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

// TrainRequest defines the request payload for training a model.
type TrainRequest struct {
	Model string `json:"model" binding:"required" example:"log_reg"`
}

// TrainResponse carries the weighted evaluation metrics of a training run.
// @Description TrainResponse carries weighted precision, recall and F1 on the fixed test partition.
type TrainResponse struct {
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
}
