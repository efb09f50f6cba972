package model

// CharityProjectModel 慈善项目
type CharityProjectModel struct {
	Id          int64  `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"size:100;not null;uniqueIndex"`
	Description string `json:"description" gorm:"type:text;not null"`

	Investment
}

// TableName 自定义表名
func (CharityProjectModel) TableName() string {
	return "charity_project"
}

func (p *CharityProjectModel) Kind() FundableKind {
	return KindCharityProject
}

func (p *CharityProjectModel) GetId() int64 {
	return p.Id
}
