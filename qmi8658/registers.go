package qmi8658

// Register map of the QMI8658C.
const (
	regWhoAmI     byte = 0x00
	regRevisionID byte = 0x01
	regCtrl1      byte = 0x02 // serial interface settings
	regCtrl2      byte = 0x03 // accel range [6:4], rate [3:0]
	regCtrl3      byte = 0x04 // gyro range [6:4], rate [3:0]
	regCtrl4      byte = 0x05 // magnetometer settings
	regCtrl5      byte = 0x06 // low-pass filter settings
	regCtrl6      byte = 0x07 // motion on demand
	regCtrl7      byte = 0x08 // accel enable bit 0, gyro enable bit 1
	regTimestamp  byte = 0x30 // 3 bytes, little endian, free-running counter
	regTemp       byte = 0x33 // 2 bytes, fractional byte then integer byte
	regAccelOut   byte = 0x35 // 6 bytes, 3×int16 little endian
	regGyroOut    byte = 0x3B // 6 bytes, 3×int16 little endian
)

// WHO_AM_I content identifying the chip.
const deviceID byte = 0x05

// CTRL1: enables 4-wire SPI interface, register address auto increment and
// big-endian SPI read data. Required for contiguous multi-byte reads, not
// user configurable.
const ctrl1Config byte = 0b0110_0000

// Field masks within the shared control registers.
const (
	rangeMask  byte = 0b0111_0000 // CTRL2/CTRL3 bits 6:4
	rangeShift      = 4
	rateMask   byte = 0b0000_1111 // CTRL2/CTRL3 bits 3:0

	ctrl7AccelEnable byte = 0b0000_0001
	ctrl7GyroEnable  byte = 0b0000_0010
)
