package model

type User struct {
	BaseModel
	Email      string `gorm:"type:text;not null;uniqueIndex" json:"email" form:"email" binding:"required,email"`
	Username   string `gorm:"type:text;not null;uniqueIndex" json:"username" form:"username" binding:"required"`
	FirstName  string `gorm:"type:text" json:"firstName" form:"firstName"`
	LastName   string `gorm:"type:text" json:"lastName" form:"lastName"`
	ProfileURL string `gorm:"type:text" json:"profileUrl" form:"profileUrl"`
}

func (u User) TableName() string {
	return "users"
}
