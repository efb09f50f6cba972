package model

// DonationModel 用户捐款
type DonationModel struct {
	Id      int64  `json:"id" gorm:"primaryKey"`
	UserId  int64  `json:"user_id" gorm:"not null;index"`
	Comment string `json:"comment" gorm:"type:text"`

	Investment
}

// TableName 自定义表名
func (DonationModel) TableName() string {
	return "donation"
}

func (d *DonationModel) Kind() FundableKind {
	return KindDonation
}

func (d *DonationModel) GetId() int64 {
	return d.Id
}
